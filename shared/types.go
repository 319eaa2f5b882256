package shared

type ServerConfig struct {
	Groundwork GroundworkConfig `mapstructure:"groundwork" validate:"required"`
	Mongo      MongoConfig      `mapstructure:"mongo" validate:"required"`
	Google     GoogleConfig     `mapstructure:"google" validate:"required"`
}

type GroundworkConfig struct {
	JwtSecret       string         `mapstructure:"jwtSecret" validate:"required"`
	TokenExpiryDays int            `mapstructure:"tokenExpiryDays"`
	Listener        ListenerConfig `mapstructure:"listener" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri" validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage" validate:"required"`
}

type StorageConfig struct {
	Bucket       string `mapstructure:"bucket" validate:"required"`
	CustomDomain string `mapstructure:"customDomain" validate:"required"`
}
