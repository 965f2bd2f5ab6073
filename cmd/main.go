package main

import (
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/config"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter(config.DB)
	r.Run(":8080")
}
