package service

import (
	"context"
	"testing"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewProfileService(r.profile)
	alice := seedUser(t, r, "alice")

	profile, err := s.Update(ctx, alice, ProfileUpdate{
		TeamName:   "FC Tokyo U15",
		Position:   "FW",
		Strengths:  []string{"speed", "shooting", "speed"},
		Weaknesses: []string{"heading"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"speed", "shooting"}, []string(profile.Strengths))

	stored, err := s.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "FW", stored.Position)
	assert.Equal(t, []string{"heading"}, []string(stored.Weaknesses))
}

func TestProfileUpdateValidation(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewProfileService(r.profile)
	alice := seedUser(t, r, "alice")

	_, err := s.Update(ctx, alice, ProfileUpdate{Position: "Libero"})
	assert.ErrorIs(t, err, util.ErrInvalidPosition)

	_, err = s.Update(ctx, alice, ProfileUpdate{Strengths: []string{"juggling"}})
	assert.ErrorIs(t, err, util.ErrInvalidSkill)

	_, err = s.Update(ctx, "ghost", ProfileUpdate{})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewProfileService(r.profile)
	alice := seedUser(t, r, "alice")

	require.NoError(t, s.SetTheme(ctx, alice, model.ThemeDark))
	profile, err := s.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, profile.Theme)

	// setting the same theme again is not an error
	require.NoError(t, s.SetTheme(ctx, alice, model.ThemeDark))

	assert.ErrorIs(t, s.SetTheme(ctx, alice, "sepia"), util.ErrInvalidTheme)
	assert.ErrorIs(t, s.SetTheme(ctx, "ghost", model.ThemeLight), util.ErrNotFound)
}
