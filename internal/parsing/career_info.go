// Package parsing turns extracted document text into structured career
// fields via LLM extraction against a fixed schema.
package parsing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/profile"
	"github.com/chays/careerscan/internal/prompts"
	"github.com/chays/careerscan/internal/schemas"
)

// rawReplyLimit caps how much of a malformed reply is kept for diagnosis.
const rawReplyLimit = 500

// ExtractCareerInfo sends document text to the model with the fixed career
// extraction prompt and parses the JSON reply into structured fields.
// The client retries transient transport failures internally; what surfaces
// here is terminal: an *APICallError (transport) or a *MalformedReplyError
// (reply is not JSON or fails the extraction schema).
func ExtractCareerInfo(ctx context.Context, client llm.Client, text, documentCategory string) (*profile.Extraction, error) {
	if text == "" {
		return nil, &MalformedReplyError{Message: "no text content to extract"}
	}

	prompt := buildExtractionPrompt(text, documentCategory)

	reply, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "career extraction request failed", Cause: err}
	}

	reply = llm.CleanJSONBlock(reply)

	if err := schemas.ValidateCareerExtraction(reply); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			logrus.WithField("raw_reply", clip(reply)).Warn("model reply failed schema validation")
			return nil, &MalformedReplyError{
				Message:  "reply does not match extraction schema",
				RawReply: clip(reply),
				Cause:    err,
			}
		}
		logrus.WithField("raw_reply", clip(reply)).Warn("model reply is not valid JSON")
		return nil, &MalformedReplyError{
			Message:  "reply is not valid JSON",
			RawReply: clip(reply),
			Cause:    err,
		}
	}

	var ext profile.Extraction
	if err := json.Unmarshal([]byte(reply), &ext); err != nil {
		return nil, &MalformedReplyError{
			Message:  "failed to decode extraction",
			RawReply: clip(reply),
			Cause:    err,
		}
	}

	return &ext, nil
}

// buildExtractionPrompt interpolates the document text and category into the
// embedded extraction template.
func buildExtractionPrompt(text, documentCategory string) string {
	if documentCategory == "" {
		documentCategory = "general"
	}
	template := prompts.MustGet("extraction.json", "extract-career-info")
	return prompts.Format(template, map[string]string{
		"DocumentType": documentCategory,
		"Text":         text,
	})
}

func clip(s string) string {
	if len(s) > rawReplyLimit {
		return s[:rawReplyLimit]
	}
	return s
}
