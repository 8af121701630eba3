package config

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
	}
	Storage struct {
		Mode      string
		UploadDir string
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Cloudinary struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	RedisAddr    string
	KafkaServers string
}
