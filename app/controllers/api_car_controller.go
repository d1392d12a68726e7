package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mkarlsen/carhub/app/models"
	"github.com/mkarlsen/carhub/app/repository"
)

var carRepo repository.CarRepository

// InitializeCarController wires the car API handlers to a storage backend.
// The repository is injected so tests can swap in a fake.
func InitializeCarController(repo repository.CarRepository) {
	carRepo = repo
}

// carRequest is the JSON body shared by the mutating car endpoints
type carRequest struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Year         int    `json:"year"`
	Driven       int    `json:"driven"`
	Registration string `json:"registration"`
}

// HandleListCars returns every car, newest first
func HandleListCars(c *fiber.Ctx) error {
	cars, err := carRepo.List()
	if err != nil {
		log.Printf("Database error: failed to fetch cars: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cars",
		})
	}

	if cars == nil {
		cars = []models.Car{}
	}

	return c.Status(fiber.StatusOK).JSON(cars)
}

// HandleCreateCar validates and persists a new car record
func HandleCreateCar(c *fiber.Ctx) error {
	var req carRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	car := models.Car{
		Title:        req.Title,
		Description:  req.Description,
		Year:         req.Year,
		Driven:       req.Driven,
		Registration: req.Registration,
	}

	// Presence check happens before any store mutation
	if err := car.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	if err := carRepo.Create(&car); err != nil {
		log.Printf("Database error: failed to add car: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add car",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":      car.ID,
		"message": "Car added successfully",
	})
}

// HandleUpdateCar overwrites all mutable fields of an existing car.
// Zero affected rows maps to 404, distinct from the 400 validation case.
func HandleUpdateCar(c *fiber.Ctx) error {
	var req carRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	car := models.Car{Title: req.Title}
	if req.ID == 0 || car.Validate() != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ID and title are required",
		})
	}

	affected, err := carRepo.Update(req.ID, map[string]interface{}{
		"title":        req.Title,
		"description":  req.Description,
		"year":         req.Year,
		"driven":       req.Driven,
		"registration": req.Registration,
	})
	if err != nil {
		log.Printf("Database error: failed to update car %d: %v", req.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update car",
		})
	}

	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Car not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Car updated successfully",
	})
}

// HandleDeleteCar removes a car by id with the same zero-vs-error contract
func HandleDeleteCar(c *fiber.Ctx) error {
	var req carRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ID is required",
		})
	}

	affected, err := carRepo.Delete(req.ID)
	if err != nil {
		log.Printf("Database error: failed to delete car %d: %v", req.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete car",
		})
	}

	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Car not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Car deleted successfully",
	})
}
