package suggestbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/prefix-suggest/src/suggestbot/db"
	"github.com/samber/lo"
)

// adminCommandPerms is a bitmask for the min permissions required to send admin commands. If any flag is set, the
// user can send admin commands.
const adminCommandPerms = discordgo.PermissionAdministrator | discordgo.PermissionManageChannels | discordgo.PermissionManageServer

func (b *SuggestBot) HandleAdminCommand(s *discordgo.Session, m *discordgo.Message, commandRaw string) {
	if m.GuildID == "" {
		b.reply(s, m, "Admin commands must be sent in the guild they are meant to apply to.")
		return
	}
	perms, err := b.Permissions(s, m)
	if err != nil {
		log.Println("could not retrieve permissions for user, ignoring admin command,", err)
		return
	}
	if perms&adminCommandPerms == 0 {
		if b.config.Debug {
			log.Printf("could not verify admin permissions, found perms %d, expected %d", perms, adminCommandPerms)
		}
		b.reply(s, m, fmt.Sprintf("You do not have permissions to manage the suggest bot in <#%s>", m.ChannelID))
		return
	}
	command, err := parseCommand(commandRaw)
	if err != nil {
		b.reply(s, m, err.Error())
		return
	}

	gid, err := strconv.Atoi(m.GuildID)
	if err != nil {
		log.Println("could not parse guildID as integer,", m.GuildID)
		return
	}
	ctx := context.Background()
	switch command.Operation {
	case OpFeatureOn:
		if err := b.updateFeatures(ctx, gid, command, enableFeatures); err != nil {
			b.reply(s, m, "Could not enable features; see the logs for details.")
			return
		}
		b.reply(s, m, fmt.Sprintf("Enabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureOff:
		if err := b.updateFeatures(ctx, gid, command, disableFeatures); err != nil {
			b.reply(s, m, "Could not disable features; see the logs for details.")
			return
		}
		b.reply(s, m, fmt.Sprintf("Disabled features %s for target %s", command.Features, command.MentionTarget()))
	case OpFeatureList:
		flags, err := b.listFeatures(ctx, gid, command)
		if err != nil {
			log.Println("could not read config from database,", err)
			return
		}
		b.reply(s, m, fmt.Sprintf("Features enabled for target %s: %s", command.MentionTarget(), flags))
	case OpLimit:
		if err := b.updateLimit(ctx, gid, command.Limit); err != nil {
			log.Println("could not update suggestion limit,", err)
			return
		}
		b.reply(s, m, fmt.Sprintf("Showing at most %d suggestions per request", command.Limit))
	case OpHelp:
		b.reply(s, m, AdminHelp)
	}
}

func (b *SuggestBot) Permissions(s *discordgo.Session, m *discordgo.Message) (int64, error) {
	g, err := s.Guild(m.GuildID)
	if err != nil {
		return 0, err
	}
	if g.OwnerID == m.Author.ID {
		return discordgo.PermissionAll, nil
	}
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		return 0, err
	}
	roles, err := s.GuildRoles(m.GuildID)
	if err != nil {
		return 0, err
	}
	rolePerms := make(map[string]int64)
	var everyone int64
	for _, role := range roles {
		rolePerms[role.ID] = role.Permissions
		if role.ID == m.GuildID { // the @everyone role shares the guild's ID
			everyone = role.Permissions
		}
	}
	permissions := everyone
	for _, roleID := range member.Roles {
		permissions |= rolePerms[roleID]
	}
	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll, nil
	}
	return permissions, nil
}

func (b *SuggestBot) listFeatures(ctx context.Context, gid int, command Command) (db.ConfigFlag, error) {
	if command.Target == TargetGlobal {
		conf, err := db.FindGuildConfig(ctx, b.db, gid, b.config.DefaultFlags)
		return conf.Flags, err
	}
	cid, err := strconv.Atoi(command.Target)
	if err != nil {
		return 0, fmt.Errorf("could not parse channelID %s as integer: %w", command.Target, err)
	}
	// channel overrides are only meaningful alongside the guild's flags
	return db.LookupFlags(ctx, b.db, gid, cid, b.config.DefaultFlags)
}

// featureMutator turns features on or off, either guild-wide or as a channel override.
type featureMutator struct {
	guild   func(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag
	channel func(current db.ChannelConfig, feats db.ConfigFlag) db.ChannelConfig
}

var (
	enableFeatures  = featureMutator{EnableFeatures, db.ChannelConfig.Enable}
	disableFeatures = featureMutator{DisableFeatures, db.ChannelConfig.Disable}
)

func EnableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.Or(feats)
}

func DisableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.And(^feats) // and with bitwise not
}

func (b *SuggestBot) updateFeatures(ctx context.Context, gid int, command Command, mutator featureMutator) error {
	if command.Target == TargetGlobal {
		currConfig, err := db.FindGuildConfig(ctx, b.db, gid, b.config.DefaultFlags) // read
		if err != nil {
			log.Println("could not retrieve guild config,", err)
			return err
		}

		currConfig.Flags = mutator.guild(currConfig.Flags, command.Features) // modify

		_, err = db.GuildConfigDAO.Upsert(ctx, b.db, currConfig) // write
		if err != nil {
			log.Println("could not update guild config,", err)
		}
		return err
	}
	// channel ID (target was verified by parseCommand)
	cid, err := strconv.Atoi(command.Target)
	if err != nil {
		log.Println("could not parse channelID as integer,", command.Target)
		return err
	}
	currConfig, err := db.ChannelConfigDAO.FindByID(ctx, b.db, cid)
	if err != nil {
		log.Println("could not retrieve channel config,", err)
		return err
	}

	currConfig = mutator.channel(currConfig, command.Features)
	currConfig.ChannelID = cid

	_, err = db.ChannelConfigDAO.Upsert(ctx, b.db, currConfig)
	if err != nil {
		log.Println("could not update channel config,", err)
	}
	return err
}

func (b *SuggestBot) updateLimit(ctx context.Context, gid int, limit int) error {
	currConfig, err := db.FindGuildConfig(ctx, b.db, gid, b.config.DefaultFlags)
	if err != nil {
		return err
	}
	currConfig.MaxSuggestions = limit
	_, err = db.GuildConfigDAO.Upsert(ctx, b.db, currConfig)
	return err
}

func (b *SuggestBot) reply(s *discordgo.Session, m *discordgo.Message, content string) {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, reference(m))
	if err != nil {
		log.Println("could not send reply,", err)
	}
}

type Operation uint8

const (
	OpFeatureOn Operation = iota
	OpFeatureOff
	OpFeatureList
	OpLimit
	OpHelp
)

const TargetGlobal = "global"

type Command struct {
	Operation Operation
	Target    string
	Features  db.ConfigFlag
	Limit     int
}

func (c Command) MentionTarget() string {
	if c.Target == TargetGlobal {
		return TargetGlobal
	}
	return fmt.Sprintf("<#%s>", c.Target)
}

func parseCommand(content string) (Command, error) {
	var err error
	tokens := lo.Compact(strings.Split(content, " "))
	if len(tokens) < 1 {
		return Command{}, errors.New("expected a valid command after `admin`; send `admin help` for help")
	}
	command := tokens[0]
	if len(tokens) > 1 && command == "feature" {
		command += " " + tokens[1]
	}
	result := Command{}
	switch command {
	case "feature on":
		result.Operation = OpFeatureOn
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature on`; send `admin help` for help")
		}
	case "feature off":
		result.Operation = OpFeatureOff
		if len(tokens) < 4 {
			return Command{}, errors.New("expected a target and list of features after `feature off`; send `admin help` for help")
		}
	case "feature list":
		result.Operation = OpFeatureList
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target after `feature list`; send `admin help` for help")
		}
	case "limit":
		result.Operation = OpLimit
		if len(tokens) != 2 {
			return Command{}, errors.New("expected a number after `limit`; send `admin help` for help")
		}
		result.Limit, err = strconv.Atoi(tokens[1])
		if err != nil || result.Limit < 0 {
			return Command{}, fmt.Errorf("couldn't parse limit '%s' as a non-negative number", tokens[1])
		}
		return result, nil
	case "help":
		result.Operation = OpHelp
		return result, nil
	default:
		return Command{}, fmt.Errorf("could not understand command %s", command)
	}

	result.Target, err = parseTarget(tokens[2])
	if err != nil {
		return Command{}, err
	}
	if result.Operation == OpFeatureList {
		return result, nil
	}

	result.Features, err = parseFeatures(tokens[3:])
	if err != nil {
		return Command{}, err
	}
	return result, nil
}

// parseTarget accepts either "global" or a channel mention, returning the channel ID in the latter case.
func parseTarget(target string) (string, error) {
	if target == TargetGlobal {
		return target, nil
	}
	if !strings.HasPrefix(target, "<#") || !strings.HasSuffix(target, ">") {
		return "", fmt.Errorf("couldn't parse target '%s' as valid target", target)
	}
	id, err := strconv.Atoi(target[2 : len(target)-1])
	if err != nil {
		return "", fmt.Errorf("couldn't parse target '%s' as valid channel mention", target)
	}
	return strconv.Itoa(id), nil
}

func parseFeatures(features []string) (db.ConfigFlag, error) {
	var result db.ConfigFlag
	for _, feature := range features {
		switch feature {
		case "ServeSuggestions":
			result |= db.ConfigServeSuggestions
		case "ExplainNoSuggestions":
			result |= db.ConfigExplainNoSuggestions
		case "ReactToInvalid":
			result |= db.ConfigReactToInvalid
		case "": // ignore
		default:
			return 0, fmt.Errorf("could not understand '%s' as a valid feature; send `admin help` for help", feature)
		}
	}
	return result, nil
}

var AdminHelp = `All commands must be sent in the guild they are meant to apply to, after the bot's prefix.
  ~~~admin feature on [target] [feature feature...]~~~
  ~~~admin feature off [target] [feature feature...]~~~
  ~~~admin feature list [target]~~~
  ~~~admin limit [count]~~~

~~~[target]~~~ can be either a channel mention or ~~~global~~~ to enable features for every channel in the guild.
~~~[feature feature...]~~~ is a space-separated list of features from the below list.
~~~[count]~~~ is the most suggestions shown per request; 0 uses the bot's default.

   - ~~~ServeSuggestions~~~ - replies to requests with every known word starting with the given letters
   - ~~~ExplainNoSuggestions~~~ - replies even when nothing matches, or when the request is not lowercase letters
   - ~~~ReactToInvalid~~~ - adds an emoji reaction to requests which are not lowercase letters
`

func init() {
	AdminHelp = strings.ReplaceAll(AdminHelp, "~~~", "`")
}
