package fcmtopic

type configSource interface {
	GetFCM() Config
}

type Config struct {
	CredentialsFile string `yaml:"credentialsFile"`
	Topic           string `yaml:"topic" validate:"required_with=CredentialsFile"`
}
