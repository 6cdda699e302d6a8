package services

import (
	"context"
	"testing"

	"clubhub/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tenantModel struct {
	ID     string
	ClubID string
}

type globalModel struct {
	ID string
}

// The nil *gorm.DB proves the empty scope never builds a query: any store
// access would panic.
func TestEmptyScopeFailsClosedWithoutQuerying(t *testing.T) {
	svc := NewBaseService[tenantModel](nil, tenantModel{})
	scope := rbac.EmptyScope()

	entities, total, err := svc.List(context.Background(), scope, 1, 10, nil, nil, "")
	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Zero(t, total)

	_, err = svc.Get(context.Background(), scope, "some-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Update(context.Background(), scope, "some-id", &tenantModel{}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), scope, "some-id"), gorm.ErrRecordNotFound)
}

func TestHasClubID(t *testing.T) {
	scoped := &BaseServiceImpl[tenantModel]{modelType: tenantModel{}}
	global := &BaseServiceImpl[globalModel]{modelType: globalModel{}}

	assert.True(t, scoped.hasClubID())
	assert.False(t, global.hasClubID())
}
