package service

import (
	"fmt"
	"strings"

	"football_assistance_backend/internal/model"
)

// CoachProfile is the slice of the player's profile the coach is told about.
type CoachProfile struct {
	Username       string   `json:"username"`
	TeamName       string   `json:"team_name,omitempty"`
	Position       string   `json:"position,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Weaknesses     []string `json:"weaknesses,omitempty"`
	FavoritePlayer string   `json:"favorite_player,omitempty"`
}

func CoachProfileFrom(p *model.Profile) *CoachProfile {
	if p == nil {
		return nil
	}
	return &CoachProfile{
		Username:       p.Username,
		TeamName:       p.TeamName,
		Position:       p.Position,
		Strengths:      p.Strengths,
		Weaknesses:     p.Weaknesses,
		FavoritePlayer: p.FavoritePlayer,
	}
}

type AnalysisContext struct {
	Opponent         string `json:"opponent"`
	Position         string `json:"position"`
	SceneDescription string `json:"sceneDescription"`
}

const coachPrompt = `You are a professional football coach who supports the growth of a player. Answer the player's questions with concrete, practical advice.

When advising:
- Suggest specific training methods
- Explain tactics so the player understands them more deeply
- Support the player's mentality
- Use positive, encouraging language
- Show a step-by-step path to improvement`

func CoachSystemPrompt(p *CoachProfile) string {
	var sb strings.Builder
	sb.WriteString(coachPrompt)
	if p == nil {
		return sb.String()
	}

	sb.WriteString("\n\nPlayer profile:\n")
	if p.Username != "" {
		fmt.Fprintf(&sb, "Name: %s\n", p.Username)
	}
	if p.TeamName != "" {
		fmt.Fprintf(&sb, "Team: %s\n", p.TeamName)
	}
	if p.Position != "" {
		fmt.Fprintf(&sb, "Position: %s\n", p.Position)
	}
	if len(p.Strengths) > 0 {
		fmt.Fprintf(&sb, "Strengths: %s\n", strings.Join(p.Strengths, ", "))
	}
	if len(p.Weaknesses) > 0 {
		fmt.Fprintf(&sb, "Weaknesses: %s\n", strings.Join(p.Weaknesses, ", "))
	}
	if p.FavoritePlayer != "" {
		fmt.Fprintf(&sb, "Favorite player: %s\n", p.FavoritePlayer)
	}
	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func AnalysisPrompt(c AnalysisContext) string {
	return fmt.Sprintf(`You are a football coach. Analyse the following match situation.

Opponent: %s
Position: %s
Scene description: %s

Give concrete feedback from these angles:
1. What went well (technical and tactical)
2. What should improve
3. Specific advice for the next match

The video cannot be viewed, so base general advice on the scene description.`,
		orDefault(c.Opponent, "unknown"),
		orDefault(c.Position, "unknown"),
		orDefault(c.SceneDescription, "not recorded"),
	)
}
