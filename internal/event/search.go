package event

// SearchableText yields every human-readable string fragment inside the
// event, for use by the search filter. Unknown events yield only their kind
// label, never their raw payload.
func (e *SessionEvent) SearchableText() []string {
	switch {
	case e.System != nil:
		return appendNonEmpty(nil, e.System.Subtype, e.System.Model, e.System.CWD)
	case e.User != nil:
		if e.User.Message == nil {
			return nil
		}
		if text, ok := e.User.Message.Content.AsText(); ok {
			return appendNonEmpty(nil, text)
		}
		return blocksSearchableText(e.User.Message.Content.Blocks)
	case e.Assistant != nil:
		if e.Assistant.Message == nil {
			return nil
		}
		return blocksSearchableText(e.Assistant.Message.Content)
	case e.ToolUseSummary != nil:
		return appendNonEmpty(nil, e.ToolUseSummary.Summary)
	case e.ToolProgress != nil:
		return appendNonEmpty(nil, e.ToolProgress.ToolName)
	case e.Result != nil:
		return appendNonEmpty(nil, e.Result.Errors...)
	case e.ControlResponse != nil:
		if e.ControlResponse.Response == nil {
			return nil
		}
		return appendNonEmpty(nil, e.ControlResponse.Response.Subtype)
	case e.EnvManagerLog != nil:
		if e.EnvManagerLog.Data == nil {
			return nil
		}
		return appendNonEmpty(nil, e.EnvManagerLog.Data.Category, e.EnvManagerLog.Data.Content)
	case e.Raw != nil:
		return appendNonEmpty(nil, e.Type)
	}
	return nil
}

func blocksSearchableText(blocks []ContentBlock) []string {
	var texts []string
	for _, b := range blocks {
		switch {
		case b.Thinking != nil:
			texts = appendNonEmpty(texts, b.Thinking.Thinking)
		case b.Text != nil:
			texts = appendNonEmpty(texts, b.Text.Text)
		case b.ToolUse != nil:
			texts = appendNonEmpty(texts, b.ToolUse.Name, string(b.ToolUse.Input))
		case b.ToolResult != nil:
			texts = appendNonEmpty(texts, string(b.ToolResult.Content))
		}
	}
	return texts
}

func appendNonEmpty(texts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			texts = append(texts, v)
		}
	}
	return texts
}
