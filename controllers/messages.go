package controllers

// Canned client-facing messages, carried over from the previous deployment
// so existing clients keep seeing the same strings.
const (
	msgMissingFields = "You have not provided enough information"
	msgBadRefCode    = "Your reference code is incorrect"
	msgUserExists    = "User already exists"
	msgUserNotFound  = "The user you were looking for was not found"
	msgPostNotFound  = "No post was found in that name"
	msgWrongPassword = "The password you've provided is wrong"
	msgUserCreated   = "User was successfully created"
	msgPostCreated   = "Post was successfully created"
	msgLoggedOut     = "If any user existed with that username/sessionkey, the user was successfully logged out"
	msgUserEdited    = "The user was successfully edited"
	msgUserDeleted   = "The user was successfully deleted"
	msgPostEdited    = "The post was successfully edited"
	msgPostDeleted   = "The post was successfully deleted"
)

// Route-level tracking tags, used when a failure cannot be attributed to a
// store call site.
const (
	tagSignupRoute     = "SU14"
	tagLoginRoute      = "LO15"
	tagLogoutRoute     = "LG17"
	tagEditRoute       = "ED18"
	tagDeleteRoute     = "DE16"
	tagByUsernameRoute = "UN12"
	tagBySessionRoute  = "SK13"
	tagListRoute       = "GP19"
	tagCreateRoute     = "CP20"
	tagFetchRoute      = "FP21"
	tagEditPostRoute   = "EP22"
	tagDeletePostRoute = "DP23"
)
