// Copyright 2024-2026 Aiku AI

package connector

import (
	_ "embed"
	"fmt"
	"text/template"
	"time"

	up "go.mau.fi/util/configupgrade"
	"gopkg.in/yaml.v3"

	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
)

//go:embed example-config.yaml
var ExampleConfig string

// Room cache backends.
const (
	RoomCacheMemory = "memory"
	RoomCacheRedis  = "redis"
)

// Config holds the WeChat connector configuration.
type Config struct {
	DisplaynameTemplate string `yaml:"displayname_template"`
	// MentionAll is the at-list sentinel that means "everyone in the room".
	// Defaults to "announcement@all".
	MentionAll string `yaml:"mention_all"`
	// ExpandMentionAll replaces a lone MentionAll entry with the room's
	// member list. When disabled the sentinel is passed through.
	ExpandMentionAll bool `yaml:"expand_mention_all"`
	// AvatarTimeout is the avatar download timeout in seconds. Defaults to 10.
	AvatarTimeout int `yaml:"avatar_timeout"`

	RoomCache RoomCacheConfig `yaml:"room_cache"`

	displaynameTemplate *template.Template `yaml:"-"`
}

// RoomCacheConfig selects where room membership snapshots are kept.
type RoomCacheConfig struct {
	Backend       string `yaml:"backend"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	// TTL in seconds; 0 keeps snapshots until the next room sync.
	TTL int `yaml:"ttl"`
}

// DisplaynameParams holds the parameters for rendering the displayname template.
type DisplaynameParams struct {
	Username string
	Nickname string
	Remark   string
	Weixin   string
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig Config
	return node.Decode((*rawConfig)(c))
}

func (c *Config) PostProcess() error {
	switch c.RoomCache.Backend {
	case "", RoomCacheMemory, RoomCacheRedis:
	default:
		return fmt.Errorf("unknown room cache backend %q", c.RoomCache.Backend)
	}
	if c.RoomCache.Backend == RoomCacheRedis && c.RoomCache.RedisAddr == "" {
		return fmt.Errorf("room_cache.redis_addr is required for the redis backend")
	}
	var err error
	c.displaynameTemplate, err = template.New("displayname").Parse(c.DisplaynameTemplate)
	return err
}

// MapperOptions returns the schema mapper options implied by the config.
func (c *Config) MapperOptions() []schemamapper.Option {
	return []schemamapper.Option{schemamapper.WithMentionAll(c.MentionAll)}
}

// RoomCacheTTL returns the configured snapshot TTL.
func (c *Config) RoomCacheTTL() time.Duration {
	return time.Duration(c.RoomCache.TTL) * time.Second
}

func (c *Config) avatarTimeout() time.Duration {
	if c.AvatarTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.AvatarTimeout) * time.Second
}

func upgradeConfig(helper up.Helper) {
	helper.Copy(up.Str, "displayname_template")
	helper.Copy(up.Str, "mention_all")
	helper.Copy(up.Bool, "expand_mention_all")
	helper.Copy(up.Int, "avatar_timeout")
	helper.Copy(up.Str, "room_cache", "backend")
	helper.Copy(up.Str, "room_cache", "redis_addr")
	helper.Copy(up.Str|up.Null, "room_cache", "redis_password")
	helper.Copy(up.Int, "room_cache", "redis_db")
	helper.Copy(up.Int, "room_cache", "ttl")
}

// ConfigUpgrader returns the upgrader that merges a user config onto
// ExampleConfig.
func ConfigUpgrader() up.Upgrader {
	return &up.StructUpgrader{
		SimpleUpgrader: up.SimpleUpgrader(upgradeConfig),
		Blocks:         nil,
		Base:           ExampleConfig,
	}
}

// FormatDisplayname generates a display name from the template and params.
func (c *Config) FormatDisplayname(params DisplaynameParams) string {
	if c.displaynameTemplate == nil {
		return params.Username
	}
	var buf []byte
	err := c.displaynameTemplate.Execute(
		(*templateBuffer)(&buf),
		params,
	)
	if err != nil {
		return params.Username
	}
	return string(buf)
}

// templateBuffer is a simple io.Writer that appends to a byte slice.
type templateBuffer []byte

func (b *templateBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
