package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer  ServerConfigs     `toml:"api_server"`
	WsServer   ServerConfigs     `toml:"ws_server"`
	Database   DatabaseConfigs   `toml:"database"`
	Auth       AuthConfigs       `toml:"auth"`
	Session    SessionConfigs    `toml:"session"`
	Redis      RedisConfigs      `toml:"redis"`
	Kafka      KafkaConfigs      `toml:"kafka"`
	Blockchain BlockchainConfigs `toml:"blockchain"`
	IPFS       PinataConfigs     `toml:"ipfs"`
	Storage    S3Configs         `toml:"storage"`
	File       FileConfigs       `toml:"file"`
	Search     SearchConfigs     `toml:"search"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	AllowCORS    []string `toml:"allow_cors"`
	MaxLimit     int      `toml:"max_limit"`
	DefaultLimit int      `toml:"default_limit"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AccessToken  TokenConfigs `toml:"access_token"`
	RefreshToken TokenConfigs `toml:"refresh_token"`

	Twitter TwitterConfigs `toml:"twitter"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type TwitterConfigs struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	UserURL      string `toml:"user_url"`

	VerifyTimeout time.Duration `toml:"verify_timeout"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

type BlockchainConfigs struct {
	Chain   string   `toml:"chain"`
	ChainID int64    `toml:"chain_id"`
	Rpcs    []string `toml:"rpcs"`

	// UseExternalRpcs enables scraping extra public rpcs from chainlist.org in
	// addition to the configured ones.
	UseExternalRpcs bool `toml:"use_external_rpcs"`

	BlockTime            int `toml:"block_time"`
	AdjustTime           int `toml:"adjust_time"`
	ThresholdUpdateBlock int `toml:"threshold_update_block"`

	RefreshConnectionFrequency time.Duration `toml:"refresh_connection_frequency"`
	ReloadFrequency            time.Duration `toml:"reload_frequency"`
	ScanReceiptFrequency       time.Duration `toml:"scan_receipt_frequency"`

	Contracts ContractConfigs `toml:"contracts"`
}

type ContractConfigs struct {
	Quinty          string `toml:"quinty"`
	QuestAirdrop    string `toml:"quest_airdrop"`
	DisputeResolver string `toml:"dispute_resolver"`
	ReputationBadge string `toml:"reputation_badge"`
}

type PinataConfigs struct {
	Token   string `toml:"token"`
	Gateway string `toml:"gateway"`
}

type S3Configs struct {
	Bucket         string `toml:"bucket"`
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	MaxSize int64 `toml:"max_size"`
}

type SearchConfigs struct {
	IndexDir string `toml:"index_dir"`
}
