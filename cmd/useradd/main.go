// Command useradd creates an account directly in the configured storage,
// bypassing the HTTP API.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/netx"
	"github.com/MrSidSir/sidEstate/internal/prompt"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
	"github.com/MrSidSir/sidEstate/internal/server/services"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer repos.Close(ctx)

	if err := repos.RunMigrations(ctx); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	t := &tool{
		users:    services.NewUserService(repos, cfg, logging.Nop{}),
		media:    services.NewMediaService(cfg),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		password: func() ([]byte, error) { return prompt.Password(os.Stdout) },
		client:   &http.Client{Timeout: uploadTimeout},
	}
	if err := t.run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

const uploadTimeout = 30 * time.Second

type tool struct {
	users    *services.UserService
	media    *services.MediaService
	in       *bufio.Reader
	out      io.Writer
	password func() ([]byte, error)
	client   *http.Client
}

// run asks for the account details, creates the user and, when a file is
// named, uploads it as the user's avatar.
func (t *tool) run(ctx context.Context) error {
	username, err := prompt.Text(t.in, t.out, "Username")
	if err != nil {
		return err
	}
	email, err := prompt.Text(t.in, t.out, "Email")
	if err != nil {
		return err
	}
	avatarPath, err := prompt.Text(t.in, t.out, "Avatar file (empty to skip)")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	pw, err := t.password()
	if err != nil {
		return err
	}

	user, err := t.users.Signup(ctx, services.SignupInput{Username: username, Email: email, Password: string(pw)})
	clear(pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "Created user %s (%s)\n", user.Username, user.ID)

	if avatarPath == "" {
		return nil
	}
	url, err := t.uploadAvatar(ctx, avatarPath)
	if err != nil {
		return fmt.Errorf("avatar upload: %w", err)
	}
	if _, err := t.users.Update(ctx, user.ID, user.ID, services.UserUpdate{Avatar: &url}); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "Avatar stored at %s\n", url)
	return nil
}

func (t *tool) uploadAvatar(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	upload, err := t.media.PresignUpload(ctx, services.MediaKindAvatar)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, t.client, upload.UploadURL, data, ""); err != nil {
		return "", err
	}
	return upload.URL, nil
}
