package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"warabibot/clients/completion"
	discordclient "warabibot/clients/discord"
	"warabibot/config"
	"warabibot/handlers"
	"warabibot/services/guildconfig"
	"warabibot/services/permissions"
	"warabibot/usecases/commands"
	"warabibot/usecases/messages"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		log.Fatalf("❌ Failed to create Discord session: %v", err)
	}

	discordClient := discordclient.NewDiscordClient(session)
	guildConfigService := guildconfig.NewGuildConfigService(cfg.GuildConfigDB)
	permissionsService := permissions.NewPermissionsService()

	completionClient, err := completion.NewCompletionClient(context.Background(), cfg.CompletionConfig)
	if err != nil {
		log.Fatalf("❌ Failed to create completion client: %v", err)
	}

	commandsUseCase := commands.NewCommandsUseCase(
		discordClient,
		guildConfigService,
		permissionsService,
		cfg.VerifyRoleName,
	)
	routerUseCase := messages.NewRouterUseCase(
		messages.NewKeywordMatcher(discordClient),
		messages.NewAIRelayMatcher(discordClient, completionClient, guildConfigService),
	)

	eventsHandler := handlers.NewDiscordEventsHandler(session, commandsUseCase, routerUseCase)

	healthHandler := handlers.NewHealthHandler()
	go func() {
		log.Printf("✅ Health endpoint listening on :%s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, healthHandler.Router()); err != nil {
			log.Printf("❌ Health server stopped: %v", err)
		}
	}()

	if err := eventsHandler.StartBot(); err != nil {
		log.Fatalf("❌ Failed to start Discord bot: %v", err)
	}
	defer eventsHandler.StopBot()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Printf("✅ Shutting down")
}
