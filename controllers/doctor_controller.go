package controllers

import (
	"context"
	"errors"
	"net/http"

	"medilink-backend/database"
	"medilink-backend/models"

	"github.com/gin-gonic/gin"
)

// DoctorReader is the read side of the roster store
type DoctorReader interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

type DoctorController struct {
	doctors DoctorReader
}

func NewDoctorController(doctors DoctorReader) *DoctorController {
	return &DoctorController{
		doctors: doctors,
	}
}

// ListDoctors returns the full roster
func (dc *DoctorController) ListDoctors(c *gin.Context) {
	doctors, err := dc.doctors.ListDoctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve doctors",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListDoctorsArray returns the full roster as a bare JSON array
func (dc *DoctorController) ListDoctorsArray(c *gin.Context) {
	doctors, err := dc.doctors.ListDoctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve doctors",
			"details": err.Error(),
		})
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}

	c.JSON(http.StatusOK, doctors)
}

// GetDoctor returns one doctor by id
func (dc *DoctorController) GetDoctor(c *gin.Context) {
	doctor, err := dc.doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrDoctorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve doctor",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, doctor)
}
