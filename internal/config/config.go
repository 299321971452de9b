package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Поддерживаемые бэкенды объектного хранилища.
const (
	BackendAzure = "azure"
	BackendS3    = "s3"
	BackendLocal = "local"
)

const defaultMaxUploadBytes = 100 << 20

type Config struct {
	ListenAddr          string  `yaml:"listen_addr" json:"listen_addr"`
	RoutePrefix         string  `yaml:"route_prefix" json:"route_prefix"`
	ServiceName         string  `yaml:"service_name" json:"service_name"`
	ServiceVersion      string  `yaml:"service_version" json:"service_version"`
	Environment         string  `yaml:"environment" json:"environment"`
	LogLevel            string  `yaml:"log_level" json:"log_level"`
	ExposeBackendErrors bool    `yaml:"expose_backend_errors" json:"expose_backend_errors"`
	Storage             Storage `yaml:"storage" json:"storage"`
	Upload              Upload  `yaml:"upload" json:"upload"`
	Health              Health  `yaml:"health" json:"health"`
	Probe               Probe   `yaml:"probe" json:"probe"`
}

// Storage описывает единственный контейнер, с которым работают обработчики.
// Секреты не сериализуются в JSON.
type Storage struct {
	Backend          string `yaml:"backend" json:"backend"`
	Container        string `yaml:"container" json:"container"`
	AccountURL       string `yaml:"account_url" json:"account_url"`
	SASToken         string `yaml:"sas_token" json:"-"`
	ConnectionString string `yaml:"connection_string" json:"-"`
	Endpoint         string `yaml:"endpoint" json:"endpoint"`
	AccessKey        string `yaml:"access_key" json:"-"`
	SecretKey        string `yaml:"secret_key" json:"-"`
	Region           string `yaml:"region" json:"region"`
	UseSSL           bool   `yaml:"use_ssl" json:"use_ssl"`
	LocalDir         string `yaml:"local_dir" json:"local_dir"`
	PublicBaseURL    string `yaml:"public_base_url" json:"public_base_url"`
}

type Upload struct {
	MaxBytes int64 `yaml:"max_bytes" json:"max_bytes"`
}

type Health struct {
	CPUSampleMS int `yaml:"cpu_sample_ms" json:"cpu_sample_ms"`
}

type Probe struct {
	SweepTTLMinutes      int `yaml:"sweep_ttl_minutes" json:"sweep_ttl_minutes"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes" json:"sweep_interval_minutes"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr:          ":7071",
		RoutePrefix:         "/api",
		ServiceName:         "Blob Functions API",
		ServiceVersion:      "1.0.0",
		Environment:         "go",
		LogLevel:            "info",
		ExposeBackendErrors: true,
		Storage: Storage{
			Backend:  BackendAzure,
			LocalDir: "./data",
		},
		Upload: Upload{MaxBytes: defaultMaxUploadBytes},
		Health: Health{CPUSampleMS: 1000},
		Probe: Probe{
			SweepTTLMinutes:      60,
			SweepIntervalMinutes: 30,
		},
	}
}

// Load читает .env и YAML-конфигурацию, применяет ENV-переопределения и проверяет результат.
func Load() (*Config, error) {
	// .env опционален, отсутствие файла не ошибка.
	_ = godotenv.Load()

	c := Default()
	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// всё может прийти из окружения
	default:
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.RoutePrefix, "ROUTE_PREFIX")
	setString(&c.ServiceName, "SERVICE_NAME")
	setString(&c.ServiceVersion, "SERVICE_VERSION")
	setString(&c.Environment, "FUNCTIONS_WORKER_RUNTIME")
	setString(&c.LogLevel, "LOG_LEVEL")

	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Container, "STORAGE_CONTAINER")
	setString(&c.Storage.AccountURL, "AZURE_STORAGE_ACCOUNT_URL")
	setString(&c.Storage.SASToken, "AZURE_STORAGE_SAS_TOKEN")
	setString(&c.Storage.ConnectionString, "AZURE_STORAGE_CONNECTION_STRING")
	setString(&c.Storage.Endpoint, "S3_ENDPOINT")
	setString(&c.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&c.Storage.Region, "S3_REGION")
	setString(&c.Storage.LocalDir, "LOCAL_STORAGE_DIR")
	setString(&c.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")

	if err := setBool(&c.ExposeBackendErrors, "EXPOSE_BACKEND_ERRORS"); err != nil {
		return err
	}
	if err := setBool(&c.Storage.UseSSL, "S3_USE_SSL"); err != nil {
		return err
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("UPLOAD_MAX_BYTES: %w", err)
		}
		c.Upload.MaxBytes = n
	}
	for key, dst := range map[string]*int{
		"HEALTH_CPU_SAMPLE_MS":     &c.Health.CPUSampleMS,
		"PROBE_SWEEP_TTL_MIN":      &c.Probe.SweepTTLMinutes,
		"PROBE_SWEEP_INTERVAL_MIN": &c.Probe.SweepIntervalMinutes,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	return nil
}

// Validate проверяет, что выбранный бэкенд сконфигурирован полностью.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if strings.TrimSpace(c.Storage.Container) == "" {
		return fmt.Errorf("storage.container is not configured")
	}

	switch c.Storage.Backend {
	case BackendAzure:
		if c.Storage.AccountURL == "" && c.Storage.ConnectionString == "" {
			return fmt.Errorf("azure backend requires storage.account_url or storage.connection_string")
		}
	case BackendS3:
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("s3 backend requires storage.endpoint")
		}
	case BackendLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("local backend requires storage.local_dir")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = defaultMaxUploadBytes
	}
	if c.Health.CPUSampleMS < 0 {
		c.Health.CPUSampleMS = 0
	}
	if c.RoutePrefix != "" {
		c.RoutePrefix = "/" + strings.Trim(c.RoutePrefix, "/")
		if c.RoutePrefix == "/" {
			c.RoutePrefix = ""
		}
	}

	return nil
}

// CPUSample возвращает окно измерения загрузки CPU.
func (c *Config) CPUSample() time.Duration {
	return time.Duration(c.Health.CPUSampleMS) * time.Millisecond
}

// SweepTTL возвращает возраст, после которого probe-объекты считаются брошенными.
func (c *Config) SweepTTL() time.Duration {
	return time.Duration(c.Probe.SweepTTLMinutes) * time.Minute
}

// SweepInterval возвращает период фоновой очистки probe-объектов.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Probe.SweepIntervalMinutes) * time.Minute
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
