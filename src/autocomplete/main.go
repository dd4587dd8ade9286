package main

import (
	"log"
	"os"

	"github.com/chzyer/readline"
	"github.com/kalexmills/prefix-suggest/src/dict"
	"github.com/kalexmills/prefix-suggest/src/shell"
	"github.com/spf13/viper"
)

type config struct {
	Prompt      string
	ExitWord    string
	HistoryFile string
}

func main() {
	conf := readConfig()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          conf.Prompt,
		HistoryFile:     conf.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       conf.ExitWord,
	})
	if err != nil {
		log.Fatalf("could not open terminal: %v", err)
	}
	defer rl.Close()

	sh := shell.Shell{
		Index:    dict.NewDefaultIndex(),
		In:       rl,
		Out:      os.Stdout,
		ExitWord: conf.ExitWord,
	}
	if err := sh.Run(); err != nil {
		log.Println("shell exited with error,", err)
		rl.Close()
		os.Exit(1)
	}
}

func readConfig() config {
	viper.SetDefault("prompt", `Enter a partial word (or type "exit" to quit): `)
	viper.SetDefault("exitWord", shell.DefaultExitWord)
	viper.SetDefault("historyFile", "")

	viper.SetEnvPrefix("PREFIX_SUGGEST")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("/etc/prefixsuggest")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Println("could not read config file, using defaults,", err)
		}
	}
	return config{
		Prompt:      viper.GetString("prompt"),
		ExitWord:    viper.GetString("exitWord"),
		HistoryFile: viper.GetString("historyFile"),
	}
}
