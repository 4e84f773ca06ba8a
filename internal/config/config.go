// internal/config/config.go
//
// 本檔負責載入執行期設定。
// 來源優先序：環境變數（前綴 BANK_）> config.yaml > 預設值。
// 載入後以 validator 檢核，確保啟動前即發現錯誤設定。
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	IDStrategySequence = "sequence"
	IDStrategyRandom   = "random"
)

// Config 為整個程式的設定。
type Config struct {
	AppEnv          string `mapstructure:"APP_ENV" validate:"oneof=development production"`
	LogLevel        string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	StartingMinimum string `mapstructure:"STARTING_MINIMUM" validate:"required,numeric"`
	IDStrategy      string `mapstructure:"ID_STRATEGY" validate:"oneof=sequence random"`
	IDFirst         int64  `mapstructure:"ID_FIRST" validate:"min=1"`
	IDMin           int64  `mapstructure:"ID_MIN" validate:"min=1"`
	IDMax           int64  `mapstructure:"ID_MAX" validate:"gtefield=IDMin"`
}

// Minimum 回傳解析後的最低開戶金額；Load 已確保其格式正確。
func (c *Config) Minimum() decimal.Decimal {
	return decimal.RequireFromString(c.StartingMinimum)
}

// Load 讀取設定並檢核。config.yaml 不存在時忽略，其餘讀檔錯誤則回傳。
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("bank")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 預設值；AutomaticEnv 只會覆寫已知的 key，因此每個欄位都需要預設
	v.SetDefault("APP_ENV", EnvProduction)
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("STARTING_MINIMUM", "1000")
	v.SetDefault("ID_STRATEGY", IDStrategySequence)
	v.SetDefault("ID_FIRST", 10000)
	v.SetDefault("ID_MIN", 10000)
	v.SetDefault("ID_MAX", 99999)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, formatErrors(err)
	}
	if cfg.Minimum().IsNegative() {
		return nil, fmt.Errorf("invalid config: STARTING_MINIMUM must not be negative")
	}
	return &cfg, nil
}

// formatErrors 將 validator 錯誤整理為單行訊息，列出所有不合法欄位。
func formatErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
