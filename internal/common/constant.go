package common

// AccessTokenCookieName is the cookie that carries the signed session token
// between the browser and the API.
const AccessTokenCookieName = "access_token"

// DefaultAvatarURL is assigned to users who never uploaded an avatar.
const DefaultAvatarURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"
