package main

import (
	"tweet-relay-bot/bot"
	"tweet-relay-bot/command"
	"tweet-relay-bot/handlers"
)

func main() {
	bot.Run(handlers.Register, command.GetCommandDefinitions())
}
