package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/parrillasur/reservabot/internal/infrastructure/database"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: archivo .env no encontrado: %v", err)
	}

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}

	// Ejecutar las migraciones
	if err := database.RunMigrations(path); err != nil {
		log.Fatalf("Error al ejecutar migraciones: %v", err)
	}

	log.Println("¡Migraciones ejecutadas con éxito!")
}
