package ai

// Model selects among the hosted models exposed through OpenRouter.
type Model string

const (
	ModelDeepSeek Model = "deepseek/deepseek-chat-v3-0324:free"
	ModelLlama    Model = "meta-llama/llama-3.3-70b-instruct:free"
	ModelGemini   Model = "google/gemini-2.0-flash-exp:free"
	ModelGPT4Mini Model = "openai/gpt-4o-mini"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = ModelDeepSeek

var knownModels = map[string]Model{
	"deepseek": ModelDeepSeek,
	"llama":    ModelLlama,
	"gemini":   ModelGemini,
	"gpt4mini": ModelGPT4Mini,
}

// ResolveModel maps a short selector or a full model id to a Model,
// falling back to the default for anything unknown.
func ResolveModel(name string) Model {
	if name == "" {
		return DefaultModel
	}
	if m, ok := knownModels[name]; ok {
		return m
	}
	for _, m := range knownModels {
		if string(m) == name {
			return m
		}
	}
	return DefaultModel
}
