package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clubhub/internal/api/middleware"
	"clubhub/internal/config"
	"clubhub/internal/events"
	"clubhub/internal/models"
	"clubhub/internal/rbac"
	"clubhub/internal/utils"
	"clubhub/internal/utils/logger"

	"crypto/rand"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	resolver *rbac.LoginResolver
	gate     *rbac.Gate
	log      *logger.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, gate *rbac.Gate) *AuthHandler {
	return &AuthHandler{
		db:       db,
		cfg:      cfg,
		resolver: rbac.NewLoginResolver(rbac.NewGormDirectory(db), cfg.Auth.SuperAdminEmail),
		gate:     gate,
		log:      logger.New("AuthHandler"),
	}
}

// LoginRequest takes whatever the person typed: an email address, a club
// login name, or the reserved super-admin address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ActiveRoleRequest struct {
	Role string `json:"role" validate:"required,club_role"`
}

type ResetPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type VerifyResetCodeRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"new_password" validate:"required,min=8"`
}

// Login resolves the typed identifier to a canonical account email, checks
// the credential of whichever principal owns that email, and issues a token
// pair. Resolution failures surface as the generic not-found error so the
// endpoint cannot be used to enumerate accounts.
// @Summary Login
// @Description Authenticate with an email or club login name and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	target, err := h.resolver.Resolve(c.Request().Context(), req.Identifier)
	if err != nil {
		return err
	}

	hash, activeRole, ok := h.credentialFor(target)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	return h.issueTokens(c, target.Email, activeRole)
}

// credentialFor finds the password hash and the default active role for a
// resolved login target. The lookup order matches the context builder, so
// the principal that authenticates is the one the gate will see.
func (h *AuthHandler) credentialFor(target *rbac.LoginTarget) (hash string, activeRole rbac.Role, ok bool) {
	if target.SuperAdmin {
		if h.cfg.Auth.SuperAdminPasswordHash == "" {
			return "", rbac.RoleNone, false
		}
		return h.cfg.Auth.SuperAdminPasswordHash, rbac.RoleSuperAdmin, true
	}

	var member models.Member
	if err := h.db.Where("LOWER(email) = ? AND is_deleted = ?", target.Email, false).First(&member).Error; err == nil {
		roles := member.RoleList()
		if len(roles) == 0 {
			return "", rbac.RoleNone, false
		}
		return member.Password, roles[0], true
	}

	var club models.Club
	if err := h.db.Where("LOWER(contact_email) = ? AND is_deleted = ?", target.Email, false).First(&club).Error; err == nil {
		return club.Password, rbac.RoleClubAdmin, true
	}

	var provider models.Provider
	if err := h.db.Where("LOWER(email) = ? AND is_deleted = ?", target.Email, false).First(&provider).Error; err == nil {
		return provider.Password, rbac.ProviderRole(provider.Type), true
	}

	return "", rbac.RoleNone, false
}

func (h *AuthHandler) issueTokens(c echo.Context, email string, activeRole rbac.Role) error {
	token, err := utils.GenerateJWT(email, activeRole)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	session := &models.AuthSession{
		Email:     email,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: utils.GetIPAddress(c.Request()),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(24 * 7 * time.Hour),
	}

	if err := h.db.Create(session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// RefreshToken exchanges a valid refresh token for a new access token.
// @Summary Refresh access token
// @Description Get a new access token using a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token body string true "Refresh token"
// @Success 200 {object} map[string]string "New access token"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	claims, err := utils.ParseRefreshToken(input.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var session models.AuthSession
	if err := h.db.Where("refresh = ? AND expires_at > ?", input.RefreshToken, time.Now()).First(&session).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	// The new access token carries no pinned role; the role claim is only a
	// preference and the next request resolves it fresh anyway.
	accessToken, err := utils.GenerateJWT(claims.Email, rbac.RoleNone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate access token"})
	}

	session.Token = accessToken
	if err := h.db.Save(&session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save access token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": accessToken, "exp": "24h"})
}

// GetMe returns the resolved access context plus the navigation sections
// the active role may see. The payload is recomputed on every call.
// @Summary Get current principal
// @Description Get the resolved identity, active role and visible sections
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	rc := middleware.GetRbacContext(c)
	if rc == nil || !rc.Recognized() {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unrecognized account"})
	}

	payload := map[string]interface{}{
		"email":    rc.Email,
		"role":     rc.Role,
		"clubId":   rc.ClubID,
		"sections": h.gate.Navigation(rc),
	}

	if member, err := models.GetMemberByEmail(rc.Email, h.db); err == nil && member != nil {
		payload["roles"] = member.RoleList()
		payload["firstName"] = member.FirstName
		payload["lastName"] = member.LastName
	}

	return c.JSON(http.StatusOK, payload)
}

// SetActiveRole pins which of the member's stored roles future requests act
// under. The requested role must be in the stored set; single-role
// principals (club admins, providers) cannot switch.
// @Summary Switch active role
// @Description Pin the active role for subsequent requests
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ActiveRoleRequest true "Role to activate"
// @Success 200 {object} map[string]string "New token with the role pinned"
// @Failure 400 {object} map[string]string "Role not held"
// @Router /users/me/active-role [put]
func (h *AuthHandler) SetActiveRole(c echo.Context) error {
	rc := middleware.GetRbacContext(c)
	if rc == nil || !rc.Recognized() {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unrecognized account"})
	}

	var req ActiveRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	member, err := models.GetMemberByEmail(rc.Email, h.db)
	if err != nil || member == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Account has a fixed role"})
	}

	requested := rbac.Role(req.Role)
	held := false
	for _, r := range member.RoleList() {
		if r == requested {
			held = true
			break
		}
	}
	if !held {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Role not held by this account"})
	}

	token, err := utils.GenerateJWT(rc.Email, requested)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// RequestPasswordReset generates a reset code for the account behind the
// identifier. The response is identical whether or not an account exists.
// @Summary Request password reset
// @Description Request a password reset code to be sent via email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Identifier for password reset"
// @Success 200 {object} map[string]string "Reset code sent if the account exists"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	generic := map[string]string{"message": "If the account exists, a reset code will be sent"}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	target, err := h.resolver.Resolve(c.Request().Context(), req.Identifier)
	if err != nil || target.SuperAdmin {
		// Same response as success; the super-admin credential is not
		// resettable through the API at all.
		return c.JSON(http.StatusOK, generic)
	}

	var member models.Member
	if err := h.db.Where("LOWER(email) = ? AND is_deleted = ?", target.Email, false).First(&member).Error; err != nil {
		return c.JSON(http.StatusOK, generic)
	}

	code, err := generateResetCode(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate reset code"})
	}

	reset := models.PasswordReset{
		MemberID:  member.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := h.db.Create(&reset).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset code"})
	}

	reset.Member = &member
	events.Emit("password.reset", &reset)

	return c.JSON(http.StatusOK, generic)
}

// VerifyResetCode verifies a reset code and sets the new password.
// @Summary Verify reset code and set new password
// @Description Verify password reset code and update password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "Reset code verification and new password"
// @Success 200 {object} map[string]string "Password reset successful"
// @Failure 400 {object} map[string]string "Invalid or expired reset code"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset/verify [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req VerifyResetCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var reset models.PasswordReset
	if err := h.db.Where("code = ? AND used = ? AND expires_at > ?",
		req.Code, false, time.Now()).First(&reset).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset code"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	var member models.Member
	if err := h.db.Where("id = ?", reset.MemberID).First(&member).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get member"})
	}

	h.db.Model(&member).Update("password", string(hashedPassword))
	h.db.Model(&reset).Update("used", true)

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// generateResetCode generates a cryptographically secure random code
// without special characters, using crypto/rand
func generateResetCode(length int) (string, error) {
	buffer := make([]byte, length*2)
	_, err := rand.Read(buffer)
	if err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(buffer)

	result := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, encoded)

	if len(result) > length {
		result = result[:length]
	}

	return result, nil
}

// InviteMemberRequest is the request body for inviting a person to a club.
type InviteMemberRequest struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"required,min=2"`
	Roles []string `json:"roles" validate:"required,min=1,dive,club_role"`
}

// InviteMember creates an invitation scoped to the inviter's own club.
// @Summary Invite a person to join a club
// @Description Send an invitation email with a preset role set
// @Tags auth
// @Accept json
// @Produce json
// @Param request body InviteMemberRequest true "Invitation details"
// @Success 201 {object} map[string]string "Invitation sent successfully"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/invite [post]
func (h *AuthHandler) InviteMember(c echo.Context) error {
	rc := middleware.GetRbacContext(c)
	if rc == nil || rc.ClubID == "" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Inviting requires a club account"})
	}

	var request InviteMemberRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	inviter, err := models.GetMemberByEmail(rc.Email, h.db)
	if err != nil || inviter == nil {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Inviting requires a member account"})
	}

	code, err := utils.GenerateRandomString(32)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate invite code"})
	}

	roles := make([]rbac.Role, 0, len(request.Roles))
	for _, r := range request.Roles {
		roles = append(roles, rbac.Role(r))
	}
	encoded, err := rbac.EncodeRoles(roles)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid role set"})
	}

	invite := models.MemberInvite{
		Code:      code,
		ExpiresAt: time.Now().Add(24 * 7 * time.Hour),
		InviterID: inviter.ID,
		ClubID:    rc.ClubID,
		Status:    models.InviteStatusPending,
		Roles:     encoded,
		Email:     request.Email,
		Name:      request.Name,
	}

	if err := h.db.Create(&invite).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create invitation"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Invitation sent successfully"})
}

type AcceptInviteRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// AcceptInvite redeems an invitation code: the member account is created in
// the inviting club with exactly the invited role set.
// @Summary Accept a club invitation
// @Description Accept an invitation and create the member account
// @Tags auth
// @Accept json
// @Produce json
// @Param code path string true "Invitation code"
// @Success 200 {object} map[string]string "Invitation accepted successfully"
// @Failure 400 {object} map[string]string "Invalid invitation"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/accept/{code} [post]
func (h *AuthHandler) AcceptInvite(c echo.Context) error {
	code := c.Param("code")

	var req AcceptInviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	var invite models.MemberInvite
	if err := h.db.Where("code = ? AND status = ? AND expires_at > ?",
		code, models.InviteStatusPending, time.Now()).First(&invite).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired invitation"})
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	newMember := models.Member{
		Email:     strings.ToLower(invite.Email),
		FirstName: invite.Name,
		Password:  string(hashedPassword),
		ClubID:    invite.ClubID,
		Roles:     invite.Roles,
	}

	if err := tx.Create(&newMember).Error; err != nil {
		tx.Rollback()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	invite.Status = models.InviteStatusAccepted
	if err := tx.Save(&invite).Error; err != nil {
		tx.Rollback()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update invitation"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	events.Emit("member.invite_accepted", &newMember)

	return c.JSON(http.StatusOK, map[string]string{"message": "Invitation accepted successfully"})
}

// DeleteInvite revokes a pending invitation issued within the caller's club.
// @Summary Delete a club invitation
// @Description Delete a pending club invitation
// @Tags auth
// @Accept json
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} map[string]string "Invitation deleted successfully"
// @Failure 400 {object} map[string]string "Invalid invitation"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/invite/{id} [delete]
func (h *AuthHandler) DeleteInvite(c echo.Context) error {
	rc := middleware.GetRbacContext(c)
	if rc == nil || rc.ClubID == "" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Requires a club account"})
	}
	inviteID := c.Param("id")

	var invite models.MemberInvite
	if err := h.db.Where("id = ? AND club_id = ?", inviteID, rc.ClubID).First(&invite).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invitation not found"})
	}

	if err := h.db.Delete(&invite).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete invitation"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Invitation deleted successfully"})
}

// GoogleAuthCallback authenticates with a Google access token. Unlike email
// and password login there is no self-serve signup here: the Google address
// must already belong to a member, so the handler only maps it through the
// resolver and issues tokens.
// @Summary Authenticate with Google
// @Description Authenticate an existing member using a Google access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "No access token provided"
// @Failure 401 {object} map[string]string "Unknown Google account"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleAuthCallback(c echo.Context) error {
	accessToken := c.Request().Header.Get("Authorization")
	if accessToken == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No access token provided"})
	}
	accessToken = strings.TrimPrefix(accessToken, "Bearer ")

	userDataBytes, err := utils.GetUserDataFromGoogle(accessToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to get user data from Google"})
	}

	var userData struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(userDataBytes, &userData); err != nil || userData.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to parse user data from Google"})
	}

	email := strings.ToLower(userData.Email)
	var member models.Member
	if err := h.db.Where("LOWER(email) = ? AND is_deleted = ?", email, false).First(&member).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No account for this Google address"})
	}

	roles := member.RoleList()
	activeRole := rbac.RoleNone
	if len(roles) > 0 {
		activeRole = roles[0]
	}

	events.Emit("member.google_auth", &member)

	return h.issueTokens(c, email, activeRole)
}
