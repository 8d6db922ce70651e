// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"apiKey"`
	Model  string `mapstructure:"model"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"keyID"`
	KeySecret string `mapstructure:"keySecret"`
}

type AppConfig struct {
	BaseURL    string `mapstructure:"baseURL"`
	AdminEmail string `mapstructure:"adminEmail"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
	App      AppConfig      `mapstructure:"app"`
}

// LoadConfig reads config.yaml from the given path and overrides values with
// environment variables. A missing config file is not an error; env vars alone
// are enough to run the server.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("smtp.host", "SMTP_HOST")
	viper.BindEnv("smtp.port", "SMTP_PORT")
	viper.BindEnv("smtp.user", "SMTP_USER")
	viper.BindEnv("smtp.password", "SMTP_PASS")
	viper.BindEnv("smtp.from", "SMTP_FROM")
	viper.BindEnv("gemini.apiKey", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("razorpay.keyID", "RAZORPAY_KEY_ID")
	viper.BindEnv("razorpay.keySecret", "RAZORPAY_KEY_SECRET")
	viper.BindEnv("app.baseURL", "APP_BASE_URL")
	viper.BindEnv("app.adminEmail", "ADMIN_EMAIL")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.dbName", "jeevan")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("app.baseURL", "http://localhost:3000")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
