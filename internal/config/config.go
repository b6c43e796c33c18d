package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Workflow WorkflowConfig `mapstructure:"workflow" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	GitHub   GitHubConfig   `mapstructure:"github"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// WorkflowConfig contains settings for the resume generation workflow and
// its background job processing.
type WorkflowConfig struct {
	// TimeoutSeconds bounds one whole workflow run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// WorkerCount is the number of concurrent background job workers.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`

	// QueueSize is the buffer size of the in-memory job queue.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}

// GitHubConfig contains settings for the GitHub metadata integration.
type GitHubConfig struct {
	// Token raises the API rate limit; anonymous access works without it.
	Token string `mapstructure:"token"`
}
