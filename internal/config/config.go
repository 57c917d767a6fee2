package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config é montado uma vez no start e injetado nos construtores.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Unipile  UnipileConfig
	Webhook  WebhookConfig
	RabbitMQ RabbitMQConfig
	Mail     MailConfig
	Import   ImportConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	URL             string
	MigrateOnStart  bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // minutos
}

// UnipileConfig aponta para o broker que mantém as sessões do LinkedIn.
type UnipileConfig struct {
	BaseURL            string
	APIKey             string
	NotifyURL          string
	SuccessRedirectURL string
	TimeoutSeconds     int
}

type WebhookConfig struct {
	Secret string
}

type RabbitMQConfig struct {
	URL string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ImportConfig struct {
	DefaultRegion string
	BatchSize     int
}

type LogConfig struct {
	Level string
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	c := Config{
		HTTP: HTTPConfig{
			Port:        v.GetString("http.port"),
			CORSOrigins: splitList(v.GetString("cors.origins")),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MigrateOnStart:  v.GetBool("database.migrate"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		Unipile: UnipileConfig{
			BaseURL:            strings.TrimRight(v.GetString("unipile.base_url"), "/"),
			APIKey:             v.GetString("unipile.api_key"),
			NotifyURL:          v.GetString("unipile.notify_url"),
			SuccessRedirectURL: v.GetString("unipile.success_redirect_url"),
			TimeoutSeconds:     v.GetInt("unipile.timeout"),
		},
		Webhook:  WebhookConfig{Secret: v.GetString("webhook.secret")},
		RabbitMQ: RabbitMQConfig{URL: v.GetString("rabbitmq.url")},
		Mail: MailConfig{
			Host:     v.GetString("mail.host"),
			Port:     v.GetInt("mail.port"),
			User:     v.GetString("mail.user"),
			Password: v.GetString("mail.pass"),
			From:     v.GetString("mail.from"),
		},
		Import: ImportConfig{
			DefaultRegion: v.GetString("import.default_region"),
			BatchSize:     v.GetInt("import.batch_size"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("cors.origins", "http://localhost:5173")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrate", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5)
	v.SetDefault("unipile.base_url", "https://api1.unipile.com:13111/api/v1")
	v.SetDefault("unipile.api_key", "")
	v.SetDefault("unipile.notify_url", "")
	v.SetDefault("unipile.success_redirect_url", "")
	v.SetDefault("unipile.timeout", 15)
	v.SetDefault("webhook.secret", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.pass", "")
	v.SetDefault("mail.from", "nao-responda@ligueoutreach.com")
	v.SetDefault("import.default_region", "Brasil")
	v.SetDefault("import.batch_size", 100)
	v.SetDefault("log.level", "info")
}

// Validate confere o mínimo para o serviço subir.
func (c Config) Validate() error {
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive, got %d", c.Import.BatchSize)
	}
	if strings.TrimSpace(c.Import.DefaultRegion) == "" {
		return fmt.Errorf("import.default_region is required")
	}
	if c.Mail.Port <= 0 {
		return fmt.Errorf("mail.port must be positive, got %d", c.Mail.Port)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
