package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"

	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// analysisResultSchema guards the shape of a 2xx analysis body. The
// scoring API is a separate deployment; a contract drift should fail
// loudly here rather than render a half-empty result page.
const analysisResultSchema = `{
	"type": "object",
	"required": ["publicId", "overall", "bands", "cefr", "feedback"],
	"properties": {
		"publicId": {"type": "string", "minLength": 1},
		"overall": {"type": "number", "minimum": 0, "maximum": 9},
		"cefr": {"type": "string", "enum": ["A1", "A2", "B1", "B2", "C1", "C2"]},
		"feedback": {"type": "string"},
		"bands": {
			"type": "object",
			"required": ["ta", "cc", "lr", "gra"],
			"properties": {
				"ta": {"type": "number", "minimum": 0, "maximum": 9},
				"cc": {"type": "number", "minimum": 0, "maximum": 9},
				"lr": {"type": "number", "minimum": 0, "maximum": 9},
				"gra": {"type": "number", "minimum": 0, "maximum": 9}
			}
		}
	}
}`

// AnalyzeEssay submits essay text for scoring and discriminates the
// response by status class: 2xx carries a validated result, 429 the
// rate-limit details, and any other status the server's message. Only
// transport and decoding failures are returned as an error.
func (c *Client) AnalyzeEssay(ctx context.Context, token string, request AnalyzeRequest) (result0 *AnalyzeOutcome, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "AnalyzeEssay",
		observability.AttributeTaskType(request.TaskType))
	defer observability.FinishSpan(span, &err)

	resp, err := c.do(ctx, http.MethodPost, "/api/essays/analyze", token, request)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(ctx, resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to read analysis response")
	}

	span.SetAttributes(observability.AttributeStatusCode(resp.StatusCode))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result, err := decodeAnalysisResult(raw)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(observability.AttributePublicID(result.PublicID))
		return &AnalyzeOutcome{Result: result}, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		var info RateLimitInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrAPIResponseInvalid, "failed to decode rate-limit response: %w", err)
		}
		c.logger.Info(ctx, "Analysis rate-limited", map[string]interface{}{
			"user_type":     info.UserType,
			"remaining":     info.Remaining,
			"suggest_login": info.SuggestLogin,
		})
		return &AnalyzeOutcome{RateLimit: &info}, nil

	default:
		message := serverMessage(raw)
		if message == "" {
			message = "Analysis failed"
		}
		return &AnalyzeOutcome{Remote: &RemoteError{StatusCode: resp.StatusCode, Message: message}}, nil
	}
}

// decodeAnalysisResult validates the body against the result schema
// before unmarshaling.
func decodeAnalysisResult(raw []byte) (*AnalysisResult, error) {
	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(analysisResultSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrAPIResponseInvalid, "analysis result is not valid JSON: %w", err)
	}
	if !validation.Valid() {
		details := ""
		for _, desc := range validation.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return nil, contextutils.NewAppError(
			contextutils.ErrorCodeAPIResponseInvalid,
			contextutils.SeverityError,
			"Analysis result failed schema validation",
			details,
		)
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrAPIResponseInvalid, "failed to decode analysis result: %w", err)
	}
	return &result, nil
}
