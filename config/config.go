package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wastemanagement/push-agent/db"
	"github.com/wastemanagement/push-agent/dispatcher"
	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/provider/fcmtopic"
	"github.com/wastemanagement/push-agent/queue"
	"github.com/wastemanagement/push-agent/redisprovider"
	"github.com/wastemanagement/push-agent/signal"
)

const CName = "config"

type SinkKind string

const (
	// SinkMongo persists channels and slots in mongo.
	SinkMongo SinkKind = "mongo"
	// SinkMemory keeps them in process.
	SinkMemory SinkKind = "memory"
	// SinkLegacy is an in-process sink without channel support.
	SinkLegacy SinkKind = "legacy"
)

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return
}

type Sink struct {
	Kind SinkKind `yaml:"kind" validate:"omitempty,oneof=mongo memory legacy"`
}

type Config struct {
	Log        logger.Config        `yaml:"log"`
	Metric     metric.Config        `yaml:"metric"`
	Device     domain.Device        `yaml:"device"`
	Mongo      db.Mongo             `yaml:"mongo"`
	Redis      redisprovider.Config `yaml:"redis"`
	Queue      queue.Config         `yaml:"queue"`
	Dispatcher dispatcher.Config    `yaml:"dispatcher"`
	Sink       Sink                 `yaml:"sink"`
	FCM        fcmtopic.Config      `yaml:"fcm"`
	Signal     signal.Config        `yaml:"signal"`
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.SinkKind() == SinkMongo && c.Mongo.Connect == "" {
		return errors.New("invalid config: mongo sink requires mongo.connect")
	}
	return nil
}

// SinkKind returns the configured sink, mongo by default.
func (c *Config) SinkKind() SinkKind {
	if c.Sink.Kind == "" {
		return SinkMongo
	}
	return c.Sink.Kind
}

func (c *Config) Init(a *app.App) (err error) {
	return nil
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}

func (c *Config) GetDevice() domain.Device {
	return c.Device
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}

func (c *Config) GetRedis() redisprovider.Config {
	return c.Redis
}

func (c *Config) GetQueue() queue.Config {
	return c.Queue
}

func (c *Config) GetDispatcher() dispatcher.Config {
	return c.Dispatcher
}

func (c *Config) GetFCM() fcmtopic.Config {
	return c.FCM
}

func (c *Config) GetSignal() signal.Config {
	return c.Signal
}
