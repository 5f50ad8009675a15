package main

// @title           ReservaBot API
// @version         1.0
// @description     API del bot de reservas de La Parrilla del Sur

// @contact.name   La Parrilla del Sur
// @contact.email  reservas@laparrilladelsur.com

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cabecera de autenticación JWT con esquema Bearer. Ejemplo: "Bearer {token}"
