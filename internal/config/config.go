package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Variáveis de ambiente reconhecidas. Tudo é lido uma vez na subida do
// processo; nada aqui é mutável em runtime.
const (
	HostEnv            = "RUNIC_HOST"
	PortEnv            = "RUNIC_PORT"
	CredentialBytesEnv = "CREDENTIAL_BYTES"
	CredentialLenEnv   = "CREDENTIAL_LEN"
	MaxSessionsEnv     = "REGISTRY_MAX_SESSIONS"
	SessionTTLEnv      = "REGISTRY_SESSION_TTL"
	NATSURLEnv         = "NATS_URL"
)

type Config struct {
	Host string
	Port int

	// Entropia em bytes de uma credencial e seu comprimento em
	// caracteres na string concatenada do canal de jogo. Os dois têm
	// que concordar: o comprimento é derivado da codificação base64
	// URL-safe sem padding dos bytes.
	CredentialBytes int
	CredentialLen   int

	MaxSessions int
	SessionTTL  time.Duration

	// URL do NATS para publicação de eventos. Vazio desliga.
	NATSURL string
}

func Load() (Config, error) {
	cfg := Config{
		Host:            getStringOrDefault(HostEnv, "localhost"),
		CredentialBytes: 8,
		CredentialLen:   11,
		MaxSessions:     30,
		NATSURL:         getStringOrDefault(NATSURLEnv, ""),
	}

	port, err := getIntOrDefault(PortEnv, 8081)
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	if cfg.CredentialBytes, err = getIntOrDefault(CredentialBytesEnv, cfg.CredentialBytes); err != nil {
		return Config{}, err
	}
	if cfg.CredentialLen, err = getIntOrDefault(CredentialLenEnv, cfg.CredentialLen); err != nil {
		return Config{}, err
	}
	if cfg.MaxSessions, err = getIntOrDefault(MaxSessionsEnv, cfg.MaxSessions); err != nil {
		return Config{}, err
	}

	ttlSeconds, err := getIntOrDefault(SessionTTLEnv, 3600)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = time.Duration(ttlSeconds) * time.Second

	if want := base64.RawURLEncoding.EncodedLen(cfg.CredentialBytes); want != cfg.CredentialLen {
		return Config{}, fmt.Errorf(
			"config: %s=%d implies %s=%d, got %d",
			CredentialBytesEnv, cfg.CredentialBytes, CredentialLenEnv, want, cfg.CredentialLen)
	}

	return cfg, nil
}

// Addr retorna o endereço de escuta host:porta.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getStringOrDefault(key, defaultVal string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) (int, error) {
	val, found := os.LookupEnv(key)
	if !found {
		return defaultVal, nil
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("config: %s is not an integer: %w", key, err)
	}
	return parsed, nil
}
