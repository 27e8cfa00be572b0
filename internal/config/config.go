package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App is the runtime configuration, loaded from the environment.
type App struct {
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" default:"nyumbastay.db"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`
	// Events; when empty, notifications stay DB-only.
	RabbitURL string `envconfig:"RABBITMQ_URL"`
	// Staff provisioning: KES fee for Admin/Manager slots beyond the free quota.
	SlotFee int64 `envconfig:"STAFF_SLOT_FEE" default:"5000"`
	// Mock M-Pesa settlement delay in seconds.
	SettleDelaySec int `envconfig:"MPESA_SETTLE_DELAY_SEC" default:"3"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
