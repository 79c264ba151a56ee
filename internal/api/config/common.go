package config

// Config holds every section of the application configuration.
type Config struct {
	Server                ServerConfig            `mapstructure:"server"`
	DB                    DBConfig                `mapstructure:"database"`
	Redis                 RedisConfig             `mapstructure:"redis"`
	Mongo                 MongoConfig             `mapstructure:"mongo"`
	MinIO                 MinIOConfig             `mapstructure:"minio"`
	LLM                   LLMConfig               `mapstructure:"llm"`
	Moderation            ModerationConfig        `mapstructure:"moderation"`
	Logstash              LogstashConfig          `mapstructure:"logstash"`
	Kafka                 KafkaConfig             `mapstructure:"kafka"`
	KafkaLikesConsumer    KafkaEngagementConsumer `mapstructure:"kafka_likes_consumer"`
	KafkaFollowsConsumer  KafkaEngagementConsumer `mapstructure:"kafka_follows_consumer"`
	NotificationRetention int                     `mapstructure:"notification_retention_days"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig relational store settings.
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// MinIOConfig object storage settings, used to resolve media URLs handed
// to the vision model.
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	UseSSL           bool   `mapstructure:"use_ssl"`
}

type LLMConfig struct {
	URL         string           `mapstructure:"url"`
	TextModel   string           `mapstructure:"text_model"`
	VisionModel string           `mapstructure:"vision_model"`
	ApiKey      string           `mapstructure:"api_key"`
	PromptsPath PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	CommentCensor   string `mapstructure:"comment_censor"`
	ContentValidate string `mapstructure:"content_validate"`
	ImageValidate   string `mapstructure:"image_validate"`
}

// ModerationConfig per-operation call budgets, in seconds. The image budget
// is the largest one since that path also fetches and encodes binary media.
type ModerationConfig struct {
	CommentTimeout int `mapstructure:"comment_timeout"`
	TextTimeout    int `mapstructure:"text_timeout"`
	ImageTimeout   int `mapstructure:"image_timeout"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaEngagementConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
