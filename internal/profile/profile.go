package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Scoring field choices for course representative text.
const (
	ScoringFieldTitle            = "title"
	ScoringFieldTitleDescription = "title_description"
)

// DefaultSimilarityThreshold is the minimum score for a course to be
// recommended. Inclusive lower bound.
const DefaultSimilarityThreshold = 0.55

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where academy stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// JWTSecret signs access tokens issued by the auth endpoints.
	JWTSecret string

	// Recommendation configuration
	ScoringField        string  // ACADEMY_SCORING_FIELD (title or title_description)
	SimilarityThreshold float64 // ACADEMY_SIMILARITY_THRESHOLD in [0,1]

	// AI configuration
	AIAPIKey         string // ACADEMY_AI_API_KEY
	AIBaseURL        string // ACADEMY_AI_BASE_URL (default: https://api.openai.com/v1)
	AIEmbeddingModel string // ACADEMY_AI_EMBEDDING_MODEL (default: text-embedding-3-small)

	// Notification configuration
	NotifyEnabled   bool   // ACADEMY_NOTIFY_ENABLED (default: false)
	SendGridAPIKey  string // ACADEMY_SENDGRID_API_KEY
	NotifyFromName  string // ACADEMY_NOTIFY_FROM_NAME
	NotifyFromEmail string // ACADEMY_NOTIFY_FROM_EMAIL
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from ACADEMY_* environment variables.
// Values already set on the profile act as defaults.
func (p *Profile) FromEnv() {
	p.JWTSecret = getEnvOrDefault("ACADEMY_JWT_SECRET", p.JWTSecret)

	p.ScoringField = getEnvOrDefault("ACADEMY_SCORING_FIELD", p.ScoringField)
	if v := os.Getenv("ACADEMY_SIMILARITY_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			p.SimilarityThreshold = threshold
		}
	}

	p.AIAPIKey = getEnvOrDefault("ACADEMY_AI_API_KEY", p.AIAPIKey)
	p.AIBaseURL = getEnvOrDefault("ACADEMY_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIEmbeddingModel = getEnvOrDefault("ACADEMY_AI_EMBEDDING_MODEL", "text-embedding-3-small")

	p.NotifyEnabled = os.Getenv("ACADEMY_NOTIFY_ENABLED") == "true"
	p.SendGridAPIKey = getEnvOrDefault("ACADEMY_SENDGRID_API_KEY", p.SendGridAPIKey)
	p.NotifyFromName = getEnvOrDefault("ACADEMY_NOTIFY_FROM_NAME", "Smart Academy")
	p.NotifyFromEmail = getEnvOrDefault("ACADEMY_NOTIFY_FROM_EMAIL", p.NotifyFromEmail)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.ScoringField == "" {
		p.ScoringField = ScoringFieldTitleDescription
	}
	if p.ScoringField != ScoringFieldTitle && p.ScoringField != ScoringFieldTitleDescription {
		return errors.Errorf("unknown scoring field %q", p.ScoringField)
	}
	if p.SimilarityThreshold == 0 {
		p.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1 {
		return errors.Errorf("similarity threshold %v out of range [0,1]", p.SimilarityThreshold)
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("academy_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
