package config

import "os"

// Credentials is a single snapshot of every API key and endpoint the
// pipeline needs. It is taken once at startup and threaded through
// construction so no provider reads the environment on its own.
type Credentials struct {
	GroqAPIKey    string
	GroqBaseURL   string
	OpenAIAPIKey  string
	SerperAPIKey  string
	ServiceAPIKey string
}

// FromEnv reads all credentials from the environment in one place.
func FromEnv() Credentials {
	return Credentials{
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:   os.Getenv("GROQ_BASE_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		SerperAPIKey:  os.Getenv("SERPER_API_KEY"),
		ServiceAPIKey: os.Getenv("SERVICE_API_KEY"),
	}
}
