// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira   JiraConfig
	Llama  LlamaConfig
	GitHub GitHubConfig
}

// JiraConfig holds the Jira Cloud connection parameters.
type JiraConfig struct {
	BaseURL  string
	Email    string
	APIToken string
}

// LlamaConfig holds the llama.cpp endpoint parameters.
type LlamaConfig struct {
	BaseURL string
	Model   string
}

// GitHubConfig holds the optional GitHub token used to fetch context files
// from private repositories.
type GitHubConfig struct {
	Token string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("jira.base_url", "JIRA_BASE_URL")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.api_token", "JIRA_API_TOKEN")
	v.BindEnv("llama.base_url", "LLAMA_BASE_URL")
	v.BindEnv("llama.model", "LLAMA_MODEL")
	v.BindEnv("github.token", "GITHUB_TOKEN")

	v.SetDefault("llama.model", "default")

	config := &Config{
		Jira: JiraConfig{
			BaseURL:  strings.TrimRight(v.GetString("jira.base_url"), "/"),
			Email:    v.GetString("jira.email"),
			APIToken: v.GetString("jira.api_token"),
		},
		Llama: LlamaConfig{
			BaseURL: strings.TrimRight(v.GetString("llama.base_url"), "/"),
			Model:   v.GetString("llama.model"),
		},
		GitHub: GitHubConfig{
			Token: v.GetString("github.token"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
// The GitHub token is optional: without it only public repositories can be
// used as context sources.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Jira.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_BASE_URL")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.APIToken == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}
	if config.Llama.BaseURL == "" {
		missingVars = append(missingVars, "LLAMA_BASE_URL")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error de configuración, faltan variables de entorno: %v", missingVars)
	}

	return nil
}
