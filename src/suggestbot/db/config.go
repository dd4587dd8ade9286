package db

import (
	"context"
	"strings"

	"github.com/jonbodner/proteus"
)

type ConfigFlag int64

func (f ConfigFlag) ServeSuggestions() bool {
	return f&ConfigServeSuggestions > 0
}

func (f ConfigFlag) ExplainNoSuggestions() bool {
	return f&ConfigExplainNoSuggestions > 0
}

func (f ConfigFlag) ReactToInvalid() bool {
	return f&ConfigReactToInvalid > 0
}

func (f ConfigFlag) Or(other ConfigFlag) ConfigFlag {
	return f | other
}

func (f ConfigFlag) And(other ConfigFlag) ConfigFlag {
	return f & other
}

func (f ConfigFlag) String() string {
	var names []string
	for _, flag := range AllFlags {
		if f&flag > 0 {
			names = append(names, FlagNames[flag])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

const (
	ConfigServeSuggestions ConfigFlag = 1 << iota
	ConfigExplainNoSuggestions
	ConfigReactToInvalid
)

var AllFlags = []ConfigFlag{ConfigServeSuggestions, ConfigExplainNoSuggestions, ConfigReactToInvalid}

var FlagNames = map[ConfigFlag]string{
	ConfigServeSuggestions:     "ServeSuggestions",
	ConfigExplainNoSuggestions: "ExplainNoSuggestions",
	ConfigReactToInvalid:       "ReactToInvalid",
}

// Settings are the effective bot settings for one channel.
type Settings struct {
	Flags          ConfigFlag
	MaxSuggestions int
}

// LookupSettings returns the settings in effect for a channel. Guilds which have never been configured use
// defaultFlags, channel overrides are applied on top of the guild's flags, and a guild limit of zero means
// defaultMax.
func LookupSettings(ctx context.Context, e proteus.ContextQuerier, guildID int, channelID int, defaultFlags ConfigFlag, defaultMax int) (Settings, error) {
	guildConf, err := FindGuildConfig(ctx, e, guildID, defaultFlags)
	if err != nil {
		return Settings{}, err
	}
	chanConf, err := ChannelConfigDAO.FindByID(ctx, e, channelID)
	if err != nil {
		return Settings{}, err
	}
	result := Settings{
		Flags:          chanConf.Apply(guildConf.Flags),
		MaxSuggestions: defaultMax,
	}
	if guildConf.MaxSuggestions > 0 {
		result.MaxSuggestions = guildConf.MaxSuggestions
	}
	return result, nil
}

// LookupFlags returns the features enabled for a channel.
func LookupFlags(ctx context.Context, e proteus.ContextQuerier, guildID int, channelID int, defaults ConfigFlag) (ConfigFlag, error) {
	settings, err := LookupSettings(ctx, e, guildID, channelID, defaults, 0)
	return settings.Flags, err
}

// FindGuildConfig reads the config for a guild, falling back to defaults if the guild has no stored config.
func FindGuildConfig(ctx context.Context, e proteus.ContextQuerier, guildID int, defaults ConfigFlag) (GuildConfig, error) {
	guildConf, err := GuildConfigDAO.FindByID(ctx, e, guildID)
	if err != nil {
		return GuildConfig{}, err
	}
	if guildConf.GuildID == 0 {
		return GuildConfig{GuildID: guildID, Flags: defaults}, nil
	}
	return guildConf, nil
}

// ChannelConfig overrides the guild's features in one channel. Features in Enabled are turned on and features in
// Disabled are turned off, whatever the guild says; a feature is never in both.
type ChannelConfig struct {
	ChannelID int        `prof:"channel_id"`
	Enabled   ConfigFlag `prof:"flags_on"`
	Disabled  ConfigFlag `prof:"flags_off"`
}

func (c ChannelConfig) Apply(guildFlags ConfigFlag) ConfigFlag {
	return (guildFlags &^ c.Disabled) | c.Enabled
}

func (c ChannelConfig) Enable(feats ConfigFlag) ChannelConfig {
	c.Enabled |= feats
	c.Disabled &^= feats
	return c
}

func (c ChannelConfig) Disable(feats ConfigFlag) ChannelConfig {
	c.Disabled |= feats
	c.Enabled &^= feats
	return c
}

var ChannelConfigDAO ChannelConfigDAOImpl

type ChannelConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, config ChannelConfig) (int64, error)   `proq:"q:chan_upsert" prop:"config"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, channelID int) (ChannelConfig, error) `proq:"q:chan_findByID" prop:"channelID"`
}

type GuildConfig struct {
	GuildID        int        `prof:"guild_id"`
	Flags          ConfigFlag `prof:"flags"`
	MaxSuggestions int        `prof:"max_suggestions"`
}

var GuildConfigDAO GuildConfigDAOImpl

type GuildConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, config GuildConfig) (int64, error) `proq:"q:guild_upsert" prop:"config"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, guildID int) (GuildConfig, error)  `proq:"q:guild_findByID" prop:"guildID"`
}

func init() {
	ctx := context.Background()
	m := proteus.MapMapper{
		"chan_upsert": `INSERT INTO channel_config (channel_id, flags_on, flags_off)
						VALUES (:config.ChannelID:, :config.Enabled:, :config.Disabled:)
						ON CONFLICT (channel_id)
						DO UPDATE SET flags_on = excluded.flags_on, flags_off = excluded.flags_off`,
		"chan_findByID": `SELECT * FROM channel_config WHERE channel_id = :channelID:`,
		"guild_upsert": `INSERT INTO guild_config (guild_id, flags, max_suggestions)
						VALUES (:config.GuildID:, :config.Flags:, :config.MaxSuggestions:)
						ON CONFLICT (guild_id)
						DO UPDATE SET flags = excluded.flags, max_suggestions = excluded.max_suggestions`,
		"guild_findByID": `SELECT * FROM guild_config WHERE guild_id = :guildID:`,
	}
	err := proteus.ShouldBuild(ctx, &ChannelConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
	err = proteus.ShouldBuild(ctx, &GuildConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
