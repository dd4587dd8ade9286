package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kalexmills/prefix-suggest/src/dict"
	"github.com/kalexmills/prefix-suggest/src/suggestbot"
	"github.com/kalexmills/prefix-suggest/src/suggestbot/db"
	"github.com/spf13/viper"
)

func main() {
	conf := readConfig()
	index := dict.NewSyncIndex(dict.NewDefaultIndex())
	bot := suggestbot.NewSuggestBot(conf, index)

	err := bot.Open()
	if err != nil {
		log.Fatalf("fail error opening bot: %v", err)
	}

	log.Printf("Bot is now running with %d words.  Press CTRL-C to exit.", index.Len())
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	err = bot.Close()
	if err != nil {
		log.Println("error closing session,", err)
	}
}

func readConfig() suggestbot.Config {
	viper.SetDefault("prefix", suggestbot.DefaultPrefix)
	viper.SetDefault("maxSuggestions", 10)
	viper.SetDefault("serveSuggestions", true)
	viper.SetDefault("explainNoSuggestions", true)
	viper.SetDefault("reactToInvalid", false)
	viper.SetDefault("invalidReact", "❓")
	viper.SetDefault("dbPath", "./suggestDB.sqlite3")
	viper.SetDefault("debug", false)

	viper.SetEnvPrefix("SUGGEST_BOT")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/suggestbot")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("no config file found, using defaults,", err)
		} else {
			log.Println("could not read config file, using defaults,", err)
		}
	}
	flags := db.ConfigFlag(0)
	if viper.GetBool("serveSuggestions") {
		flags |= db.ConfigServeSuggestions
	}
	if viper.GetBool("explainNoSuggestions") {
		flags |= db.ConfigExplainNoSuggestions
	}
	if viper.GetBool("reactToInvalid") {
		flags |= db.ConfigReactToInvalid
	}
	return suggestbot.Config{
		Token:          viper.GetString("token"),
		DBPath:         viper.GetString("dbPath"),
		Prefix:         viper.GetString("prefix"),
		MaxSuggestions: viper.GetInt("maxSuggestions"),
		DefaultFlags:   flags,
		InvalidReact:   viper.GetString("invalidReact"),
		Debug:          viper.GetBool("debug"),
	}
}
