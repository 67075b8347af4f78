package command

import "github.com/bwmarrin/discordgo"

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}

// StatusCommand defines the structure for the /status command.
type StatusCommand struct{}

// Definition returns the application command definition.
func (c *StatusCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "status",
		Description: "Show the relay's polling and archive status",
	}
}

// PollCommand defines the structure for the /poll command.
type PollCommand struct{}

// Definition returns the application command definition.
func (c *PollCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "poll",
		Description: "Manually trigger a poll cycle (operators only)",
	}
}
