package usecase

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/generator"
	"realty-content-engine/internal/model"
)

// GenerateInstagramPost builds a social post directly from an image
// description, skipping the router. The description passes full input
// validation plus the image-request check before any generation runs.
// The result is returned to the caller without landing in the content
// history; direct posts are fire-and-forget.
func (uc *implUseCase) GenerateInstagramPost(ctx context.Context, input content.InstagramPostInput) (content.InstagramPostOutput, error) {
	desc := strings.TrimSpace(input.ImageDescription)
	if desc == "" {
		return content.InstagramPostOutput{}, content.ErrEmptyImageDesc
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = content.DefaultSessionID
	}

	uc.l.Infof(ctx, "%s: session=%s desc=%q", LogPrefixInstagram, sessionID, desc)

	if check := uc.guard.ValidateInput(ctx, desc, model.ValidationImage, model.ContentTypeInstagram); !check.Passed {
		return blockedPost(sessionID, check), nil
	}
	if check := uc.guard.ValidateImageRequest(ctx, desc); !check.Passed {
		return blockedPost(sessionID, check), nil
	}

	gen := uc.registry.Instagram()
	if gen == nil {
		return content.InstagramPostOutput{}, fmt.Errorf("instagram generator is not available")
	}

	post, err := gen.ComposePost(ctx, generator.ComposeInput{
		ImageDescription: desc,
		PropertyDetails:  input.PropertyDetails,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: composition failed: %v", LogPrefixInstagram, err)
		return content.InstagramPostOutput{}, fmt.Errorf("compose post: %w", err)
	}

	return content.InstagramPostOutput{
		Success:   true,
		Image:     post.Image,
		Caption:   post.Caption,
		Hashtags:  post.Hashtags,
		FullPost:  post.FullPost,
		SessionID: sessionID,
	}, nil
}

func blockedPost(sessionID string, check model.GuardrailResult) content.InstagramPostOutput {
	return content.InstagramPostOutput{
		Error:     check.Message,
		SessionID: sessionID,
		Guardrails: content.GuardrailsInfo{
			Blocked:   true,
			BlockedBy: check.BlockedBy,
		},
	}
}
