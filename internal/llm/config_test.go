package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	tests := []struct {
		name   string
		models map[ModelTier]string
		tier   ModelTier
		want   string
	}{
		{name: "exact tier", models: DefaultConfig().Models, tier: TierAdvanced, want: "gemini-2.5-pro"},
		{name: "unknown tier uses standard", models: DefaultConfig().Models, tier: "unknown", want: "gemini-2.5-flash"},
		{name: "unknown tier falls through to lite", models: map[ModelTier]string{TierLite: "tiny"}, tier: "unknown", want: "tiny"},
		{name: "nothing configured", models: map[ModelTier]string{}, tier: TierAdvanced, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Provider: ProviderGemini, Models: tt.models}
			assert.Equal(t, tt.want, config.GetModel(tt.tier))
		})
	}
}

func TestWithModel_CopiesModels(t *testing.T) {
	base := DefaultConfig()
	planner := base.WithModel(TierAdvanced, "planner-model")

	assert.Equal(t, "planner-model", planner.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", planner.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-pro", base.GetModel(TierAdvanced), "base config must not change")
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		provider     Provider
		wantProvider Provider
		wantAdvanced string
		wantBaseURL  string
	}{
		{provider: ProviderGemini, wantProvider: ProviderGemini, wantAdvanced: "gemini-2.5-pro"},
		{provider: ProviderOpenAI, wantProvider: ProviderOpenAI, wantAdvanced: "gpt-4-turbo"},
		{provider: ProviderHuggingFace, wantProvider: ProviderHuggingFace, wantAdvanced: "gpt2", wantBaseURL: defaultHuggingFaceURL},
		{provider: ProviderWebUI, wantProvider: ProviderWebUI, wantAdvanced: "", wantBaseURL: defaultWebUIURL},
		{provider: ProviderNone, wantProvider: ProviderNone, wantAdvanced: ""},
		{provider: "unknown", wantProvider: ProviderGemini, wantAdvanced: "gemini-2.5-pro"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			config := ConfigFor(tt.provider)
			assert.Equal(t, tt.wantProvider, config.Provider)
			assert.Equal(t, tt.wantAdvanced, config.GetModel(TierAdvanced))
			assert.Equal(t, tt.wantBaseURL, config.BaseURL)
		})
	}
}

func TestWithAllModels(t *testing.T) {
	config := DefaultOpenAIConfig()
	newConfig := config.WithAllModels("gpt-4o")

	assert.Equal(t, "gpt-4o", newConfig.GetModel(TierLite))
	assert.Equal(t, "gpt-4o", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gpt-4o", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gpt-4-turbo", config.GetModel(TierAdvanced))
	assert.Equal(t, config.Timeout, newConfig.Timeout)
}

func TestTimeoutDefaults(t *testing.T) {
	config := &Config{}
	assert.Equal(t, DefaultTimeout, config.timeout())
	assert.Equal(t, DefaultHealthTimeout, config.healthTimeout())
}
