package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ironpeak/gym-app/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// BackupModelName tags tips served from the static templates.
const BackupModelName = "backup"

const defaultAttemptTimeout = 15 * time.Second

// TipBackend is one named text-generation provider in the failover chain.
type TipBackend struct {
	Name     string
	Generate func(ctx context.Context, prompt string) (string, error)
}

// TipsService produces motivational training tips for a member.
type TipsService interface {
	// GetTips never fails: when every backend errors it falls back to a
	// static template keyed by the member's goal.
	GetTips(ctx context.Context, memberName, goal, level string, exercises []string) (tips string, model string)
}

// tipsService implements the TipsService interface.
type tipsService struct {
	backends       []TipBackend
	attemptTimeout time.Duration
}

// NewTipsService creates a tips service over an ordered list of backends.
func NewTipsService(backends []TipBackend, attemptTimeout time.Duration) TipsService {
	if attemptTimeout <= 0 {
		attemptTimeout = defaultAttemptTimeout
	}
	return &tipsService{
		backends:       backends,
		attemptTimeout: attemptTimeout,
	}
}

// BackendsFromConfig builds OpenAI-compatible chat backends from config,
// preserving their configured order.
func BackendsFromConfig(cfg config.AIConfig) []TipBackend {
	backends := make([]TipBackend, 0, len(cfg.Backends))
	for _, b := range cfg.Backends {
		clientCfg := openai.DefaultConfig(b.APIKey)
		if b.BaseURL != "" {
			clientCfg.BaseURL = b.BaseURL
		}
		client := openai.NewClientWithConfig(clientCfg)
		model := b.Model

		backends = append(backends, TipBackend{
			Name: b.Name,
			Generate: func(ctx context.Context, prompt string) (string, error) {
				resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
					Model: model,
					Messages: []openai.ChatCompletionMessage{
						{Role: openai.ChatMessageRoleSystem, Content: "You are a friendly gym coach. Give short, practical training tips."},
						{Role: openai.ChatMessageRoleUser, Content: prompt},
					},
				})
				if err != nil {
					return "", err
				}
				if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
					return "", fmt.Errorf("backend returned empty completion")
				}
				return resp.Choices[0].Message.Content, nil
			},
		})
	}
	return backends
}

// GetTips tries each backend in order and returns the first success tagged
// with the backend's name. Total failure degrades to the backup template.
func (s *tipsService) GetTips(ctx context.Context, memberName, goal, level string, exercises []string) (string, string) {
	prompt := buildTipsPrompt(memberName, goal, level, exercises)

	for _, backend := range s.backends {
		attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
		tips, err := backend.Generate(attemptCtx, prompt)
		cancel()

		if err != nil {
			log.Printf("INFO: AI backend '%s' failed, trying next: %v", backend.Name, err)
			continue
		}
		return tips, backend.Name
	}

	return backupTips(memberName, goal), BackupModelName
}

func buildTipsPrompt(memberName, goal, level string, exercises []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Give 3 numbered training tips for %s.", memberName)
	if goal != "" {
		fmt.Fprintf(&b, " Goal: %s.", goal)
	}
	if level != "" {
		fmt.Fprintf(&b, " Level: %s.", level)
	}
	if len(exercises) > 0 {
		fmt.Fprintf(&b, " Today's exercises: %s.", strings.Join(exercises, ", "))
	}
	return b.String()
}

// backupTips deterministically selects a static template by goal keyword.
func backupTips(memberName, goal string) string {
	goalLower := strings.ToLower(goal)

	var tips [3]string
	switch {
	case strings.Contains(goalLower, "weight"):
		tips = [3]string{
			"Pair your workouts with a small calorie deficit - fat loss happens in the kitchen too.",
			"Keep rest between sets short (30-60s) to keep your heart rate up.",
			"Finish each session with 10-15 minutes of steady cardio.",
		}
	case strings.Contains(goalLower, "muscle"):
		tips = [3]string{
			"Add a little weight or an extra rep each week - progressive overload builds muscle.",
			"Eat enough protein: roughly 1.6-2g per kg of bodyweight per day.",
			"Sleep 7-9 hours; muscle grows while you recover, not while you lift.",
		}
	default:
		tips = [3]string{
			"Warm up properly before heavy sets - your top sets will feel lighter.",
			"Focus on form before load; a clean rep beats a heavy ugly one.",
			"Track your lifts so every session has a number to beat.",
		}
	}

	return fmt.Sprintf("Hey %s! Here are your tips:\n1. %s\n2. %s\n3. %s",
		memberName, tips[0], tips[1], tips[2])
}
