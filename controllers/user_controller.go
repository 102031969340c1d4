package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ndesc/ndesc-api/models"
	"github.com/ndesc/ndesc-api/refcode"
	"github.com/ndesc/ndesc-api/store"
	"github.com/ndesc/ndesc-api/utils"
)

// UserController handles the account lifecycle endpoints: signup, login,
// logout, edit, delete and the two lookup routes.
type UserController struct {
	users *store.UserStore
	gate  *refcode.Gate
}

// NewUserController creates a new UserController instance.
func NewUserController(users *store.UserStore, gate *refcode.Gate) *UserController {
	return &UserController{users: users, gate: gate}
}

// failUser maps a store error onto the response for user endpoints.
// fallbackTag covers errors that carry no call-site tag of their own.
func failUser(ctx *gin.Context, err error, fallbackTag string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Message(ctx, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, store.ErrForbidden):
		utils.Message(ctx, http.StatusForbidden, msgWrongPassword)
	case errors.Is(err, store.ErrConflict):
		utils.Message(ctx, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, store.ErrBadSelector):
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
	default:
		utils.ServerError(ctx, trackingTag(err, fallbackTag))
	}
}

func trackingTag(err error, fallback string) string {
	var ue *store.UnavailableError
	if errors.As(err, &ue) {
		return ue.Tag
	}
	return fallback
}

// Signup creates an account. A valid referral code is required before the
// store is touched at all.
func (u *UserController) Signup(ctx *gin.Context) {
	var req struct {
		RefCode   string `json:"refcode"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		ColNo     int    `json:"col_no"`
		Avatar    string `json:"avatar"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.RefCode == "" || req.Username == "" || req.FirstName == "" || req.LastName == "" ||
		req.Email == "" || req.Password == "" || req.ColNo == 0 || req.Avatar == "" {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	if !u.gate.Check(req.RefCode) {
		utils.Message(ctx, http.StatusUnauthorized, msgBadRefCode)
		return
	}

	user := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		ColNo:     req.ColNo,
		Avatar:    req.Avatar,
	}
	if err := u.users.Register(ctx.Request.Context(), user, req.Password); err != nil {
		failUser(ctx, err, tagSignupRoute)
		return
	}
	utils.Message(ctx, http.StatusCreated, msgUserCreated)
}

// Login authenticates and returns the freshly issued session key.
func (u *UserController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	key, err := u.users.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		failUser(ctx, err, tagLoginRoute)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "sessionkey": key})
}

// Logout invalidates a session by username or by session key. When both are
// supplied the username wins. Logging out a session that does not exist is a
// success.
func (u *UserController) Logout(ctx *gin.Context) {
	var req struct {
		Username   string `json:"username"`
		SessionKey string `json:"sessionkey"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || (req.Username == "" && req.SessionKey == "") {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	sel := store.ByUsername(req.Username)
	if req.Username == "" {
		sel = store.BySessionKey(req.SessionKey)
	}
	if err := u.users.InvalidateSession(ctx.Request.Context(), sel); err != nil {
		failUser(ctx, err, tagLogoutRoute)
		return
	}
	utils.Message(ctx, http.StatusOK, msgLoggedOut)
}

// Edit applies a partial update after verifying the old password. Fields
// absent from the body stay untouched.
func (u *UserController) Edit(ctx *gin.Context) {
	var req struct {
		Username    string  `json:"username"`
		OldPassword string  `json:"oldPassword"`
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		Email       *string `json:"email"`
		Password    *string `json:"password"`
		ColNo       *int    `json:"col_no"`
		Avatar      *string `json:"avatar"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Username == "" || req.OldPassword == "" {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	patch := models.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		ColNo:     req.ColNo,
		Avatar:    req.Avatar,
	}
	if err := u.users.Edit(ctx.Request.Context(), req.Username, patch, req.OldPassword); err != nil {
		failUser(ctx, err, tagEditRoute)
		return
	}
	utils.Message(ctx, http.StatusOK, msgUserEdited)
}

// Delete removes the account after verifying the password.
func (u *UserController) Delete(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		utils.Message(ctx, http.StatusBadRequest, msgMissingFields)
		return
	}

	if err := u.users.Delete(ctx.Request.Context(), req.Username, req.Password); err != nil {
		failUser(ctx, err, tagDeleteRoute)
		return
	}
	utils.Message(ctx, http.StatusOK, msgUserDeleted)
}

// GetByUsername looks a user up by username.
func (u *UserController) GetByUsername(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	user, err := u.users.Fetch(ctx.Request.Context(), store.ByUsername(username))
	if err != nil {
		failUser(ctx, err, tagByUsernameRoute)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "user": user})
}

// GetBySessionKey looks a user up by session key.
func (u *UserController) GetBySessionKey(ctx *gin.Context) {
	key := strings.TrimSpace(ctx.Param("sessionkey"))
	user, err := u.users.Fetch(ctx.Request.Context(), store.BySessionKey(key))
	if err != nil {
		failUser(ctx, err, tagBySessionRoute)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "user": user})
}
