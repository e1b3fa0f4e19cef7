package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"ainnect/api/routes"
	"ainnect/config"
	"ainnect/db"
	"ainnect/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := services.InitRedis(); err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
	}

	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("Warning: RabbitMQ initialization failed: %v", err)
	} else {
		if err := services.StartRelationEventConsumer(context.Background(), "relation_push_queue"); err != nil {
			log.Printf("Warning: failed to start relation event consumer: %v", err)
		}
	}

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.PublicApi(router)

	addr := ":8080"
	if config.AppConfig.Backend.Port != 0 {
		addr = fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
