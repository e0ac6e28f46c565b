// Package gemini bridges the tool catalogue to Gemini function calling:
// declarations become genai tools, and function calls from a model turn are
// dispatched through the catalogue and answered with function responses.
package gemini

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/Cyclone1070/vsh/internal/shell/command"
	"github.com/Cyclone1070/vsh/internal/tool"
)

// Toolset is the part of the tool catalogue the bridge needs.
type Toolset interface {
	Declarations() []tool.Declaration
	Call(ctx context.Context, name string, args map[string]any) (command.Result, error)
}

// Bridge answers Gemini function calls from one session.
type Bridge struct {
	tools Toolset
}

// New creates a bridge over a tool catalogue.
func New(tools Toolset) *Bridge {
	if tools == nil {
		panic("tools is required")
	}
	return &Bridge{tools: tools}
}

// Tools returns the catalogue as Gemini tools, ready for
// GenerateContentConfig.Tools.
func (b *Bridge) Tools() []*genai.Tool {
	return Tools(b.tools.Declarations())
}

// Config returns a generation config carrying the catalogue.
func (b *Bridge) Config() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools:          b.Tools(),
		SafetySettings: defaultSafetySettings(),
	}
}

// Respond runs one function call. Rejected arguments and unknown tools are
// reported to the model under "error"; command failures are ordinary
// results with a non-zero exit code.
func (b *Bridge) Respond(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	args := call.Args
	if args == nil {
		args = map[string]any{}
	}

	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}
	res, err := b.tools.Call(ctx, call.Name, args)
	if err != nil {
		logrus.WithError(err).WithField("tool", call.Name).Debug("function call rejected")
		resp.Response = errorToResponse(err)
		return resp
	}
	logrus.WithFields(logrus.Fields{
		"tool":      call.Name,
		"exit_code": res.ExitCode,
	}).Debug("function call finished")
	resp.Response = resultToResponse(res)
	return resp
}

// RespondAll answers every function call in a model turn, in order, as one
// user content. It returns nil when the turn has no function calls.
func (b *Bridge) RespondAll(ctx context.Context, turn *genai.Content) *genai.Content {
	if turn == nil {
		return nil
	}
	var parts []*genai.Part
	for _, part := range turn.Parts {
		if part == nil || part.FunctionCall == nil {
			continue
		}
		parts = append(parts, &genai.Part{FunctionResponse: b.Respond(ctx, part.FunctionCall)})
	}
	if len(parts) == 0 {
		return nil
	}
	return genai.NewContentFromParts(parts, genai.RoleUser)
}

// defaultSafetySettings turns off blocking for every category.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}
