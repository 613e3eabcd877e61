package domain

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"
)

type Platform uint8

const (
	PlatformIOS Platform = iota
	PlatformAndroid
)

func (p Platform) String() string {
	if p == PlatformIOS {
		return "ios"
	}
	return "android"
}

func (p *Platform) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "ios":
		*p = PlatformIOS
	case "android", "":
		*p = PlatformAndroid
	default:
		return fmt.Errorf("unexpected platform: %q", value.Value)
	}
	return nil
}

type TokenStatus uint8

const (
	TokenStatusValid TokenStatus = iota
	TokenStatusInvalid
)

// RegistrationToken is the opaque identity the transport issues for this installation.
type RegistrationToken string

// Fingerprint is a short stable id of the token, safe to put into logs.
func (t RegistrationToken) Fingerprint() string {
	if t == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(t))
	return base58.Encode(sum[:8])
}

type Device struct {
	Id       string   `yaml:"id" validate:"required"`
	Platform Platform `yaml:"platform"`
}

// UnmarshalYAML defaults the platform to android when the key is missing.
func (d *Device) UnmarshalYAML(value *yaml.Node) error {
	type plain Device
	res := plain{Platform: PlatformAndroid}
	if err := value.Decode(&res); err != nil {
		return err
	}
	*d = Device(res)
	return nil
}

type Token struct {
	Id       string      `bson:"_id"`
	DeviceId string      `bson:"deviceId"`
	Platform Platform    `bson:"platform"`
	Status   TokenStatus `bson:"status"`
	Created  int64       `bson:"created"`
	Updated  int64       `bson:"updated"`
}
