package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type scopedEntity struct {
	ID     string `json:"id"`
	ClubID string `json:"clubId"`
	Name   string `json:"name"`
}

type globalEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestStampClubIDOverwritesPostedTenant(t *testing.T) {
	e := scopedEntity{ClubID: "club-99", Name: "smuggled"}

	stampClubID(&e, rbac.ClubScope("club-42"))
	assert.Equal(t, "club-42", e.ClubID)
}

func TestStampClubIDLeavesWiderScopesAlone(t *testing.T) {
	e := scopedEntity{ClubID: "club-99"}

	stampClubID(&e, rbac.AllScope())
	assert.Equal(t, "club-99", e.ClubID)

	stampClubID(&e, rbac.EmptyScope())
	assert.Equal(t, "club-99", e.ClubID)
}

func TestStampClubIDWithoutField(t *testing.T) {
	e := globalEntity{Name: "platform-wide"}

	// Must not panic on models without a tenant column.
	stampClubID(&e, rbac.ClubScope("club-42"))
	assert.Equal(t, "platform-wide", e.Name)
}

// recordingService captures creates so tests can assert whether the store
// was reached at all.
type recordingService struct {
	created []*scopedEntity
}

func (s *recordingService) Create(_ context.Context, entity *scopedEntity, _ ...string) error {
	s.created = append(s.created, entity)
	return nil
}

func (s *recordingService) Get(context.Context, rbac.ScopeDecision, string, ...string) (*scopedEntity, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *recordingService) List(context.Context, rbac.ScopeDecision, int, int, map[string]interface{}, []string, string, ...string) ([]scopedEntity, int64, error) {
	return nil, 0, nil
}

func (s *recordingService) Update(context.Context, rbac.ScopeDecision, string, *scopedEntity, ...string) error {
	return nil
}

func (s *recordingService) Delete(context.Context, rbac.ScopeDecision, string) error {
	return nil
}

type passValidator struct{}

func (passValidator) Validate(interface{}) error { return nil }

func newCreateContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	e.Validator = passValidator{}
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCreateRejectsEmptyScope(t *testing.T) {
	svc := &recordingService{}
	controller := NewBaseController[scopedEntity](svc)

	ctx := newCreateContext(t, `{"clubId":"club-99","name":"smuggled"}`)
	ctx.Set("scope", rbac.EmptyScope())

	err := controller.Create(ctx)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, svc.created, "an empty scope must never reach the store")
}

func TestCreateStampsScopedClub(t *testing.T) {
	svc := &recordingService{}
	controller := NewBaseController[scopedEntity](svc)

	ctx := newCreateContext(t, `{"clubId":"club-99","name":"fixture"}`)
	ctx.Set("scope", rbac.ClubScope("club-42"))

	require.NoError(t, controller.Create(ctx))
	require.Len(t, svc.created, 1)
	assert.Equal(t, "club-42", svc.created[0].ClubID)
	assert.Equal(t, "fixture", svc.created[0].Name)
}

func TestParseIncludes(t *testing.T) {
	e := echo.New()

	ctx := e.NewContext(httptest.NewRequest("GET", "/members?include=Club,Teams", nil), httptest.NewRecorder())
	assert.Equal(t, []string{"Club", "Teams"}, parseIncludes(ctx))

	ctx = e.NewContext(httptest.NewRequest("GET", "/members", nil), httptest.NewRecorder())
	assert.Nil(t, parseIncludes(ctx))
}
