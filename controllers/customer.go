package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"customer-service/models"
	"customer-service/repository"
	"customer-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CustomerController serves the /customers resource.
type CustomerController struct {
	repo   repository.CustomerRepository
	logger *zap.Logger
}

func NewCustomerController(repo repository.CustomerRepository, logger *zap.Logger) *CustomerController {
	return &CustomerController{repo: repo, logger: logger.Named("customers")}
}

// ListCustomers returns every customer, or those matching the first filter present in
// the order id, phone_number, name, available, email, address.
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		customers []models.Customer
		err       error
	)
	if id, ok := c.GetQuery("id"); ok {
		cc.logger.Info("request to list customers by id", zap.String("id", id))
		customers, err = cc.findByID(c, id)
	} else if phone, ok := c.GetQuery("phone_number"); ok {
		customers, err = cc.repo.FindByPhoneNumber(ctx, phone)
	} else if name, ok := c.GetQuery("name"); ok {
		customers, err = cc.repo.FindByName(ctx, name)
	} else if available, ok := c.GetQuery("available"); ok {
		customers, err = cc.repo.FindByAvailability(ctx, utils.ParseBoolQuery(available))
	} else if email, ok := c.GetQuery("email"); ok {
		customers, err = cc.repo.FindByEmail(ctx, email)
	} else if address, ok := c.GetQuery("address"); ok {
		customers, err = cc.repo.FindByAddress(ctx, address)
	} else {
		customers, err = cc.repo.All(ctx)
	}
	if err != nil {
		cc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeAll(customers))
}

// GetCustomer returns a single customer.
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customer, ok := cc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, customer.Serialize())
}

// CreateCustomer creates a customer from a JSON body and points Location at it.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	if !utils.HasJSONContentType(c) {
		cc.unsupportedMediaType(c)
		return
	}

	var customer models.Customer
	if err := cc.bindCustomer(c, &customer); err != nil {
		cc.fail(c, err)
		return
	}
	if err := cc.repo.Create(c.Request.Context(), &customer); err != nil {
		cc.fail(c, err)
		return
	}

	cc.logger.Info("customer created", zap.Uint("id", customer.ID))
	location := fmt.Sprintf("%s/%d", c.FullPath(), customer.ID)
	c.Header("Location", utils.AbsoluteURL(c, location))
	c.JSON(http.StatusCreated, customer.Serialize())
}

// UpdateCustomer replaces the fields of an existing customer. The id in the path wins
// over any id in the body.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	customer, ok := cc.lookup(c)
	if !ok {
		return
	}
	if !utils.HasJSONContentType(c) {
		cc.unsupportedMediaType(c)
		return
	}

	if err := cc.bindCustomer(c, customer); err != nil {
		cc.fail(c, err)
		return
	}
	if err := cc.repo.Update(c.Request.Context(), customer); err != nil {
		cc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, customer.Serialize())
}

// DeleteCustomer removes a customer. Deleting a customer that does not exist succeeds.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err == nil {
		customer, err := cc.repo.Find(ctx, uint(id))
		if err != nil {
			cc.fail(c, err)
			return
		}
		if customer != nil {
			if err := cc.repo.Delete(ctx, customer); err != nil {
				cc.fail(c, err)
				return
			}
		}
	}

	c.Status(http.StatusNoContent)
}

// SuspendCustomer marks a customer unavailable.
func (cc *CustomerController) SuspendCustomer(c *gin.Context) {
	cc.setAvailability(c, (*models.Customer).Suspend)
}

// ActivateCustomer marks a customer available.
func (cc *CustomerController) ActivateCustomer(c *gin.Context) {
	cc.setAvailability(c, (*models.Customer).Activate)
}

func (cc *CustomerController) setAvailability(c *gin.Context, apply func(*models.Customer)) {
	customer, ok := cc.lookup(c)
	if !ok {
		return
	}

	apply(customer)
	if err := cc.repo.Update(c.Request.Context(), customer); err != nil {
		cc.fail(c, err)
		return
	}

	cc.logger.Info("customer availability changed",
		zap.Uint("id", customer.ID), zap.Bool("available", customer.Available))
	c.JSON(http.StatusOK, customer.Serialize())
}

// lookup loads the customer named by the :id path parameter and writes a 404 when
// there is none. A malformed id cannot name a customer, so it is a 404 as well.
func (cc *CustomerController) lookup(c *gin.Context) (*models.Customer, bool) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 0)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage(rawID))
		return nil, false
	}

	customer, err := cc.repo.FindOrNotFound(c.Request.Context(), uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage(rawID))
		return nil, false
	}
	if err != nil {
		cc.fail(c, err)
		return nil, false
	}
	return customer, true
}

func (cc *CustomerController) findByID(c *gin.Context, rawID string) ([]models.Customer, error) {
	id, err := strconv.ParseUint(rawID, 10, 0)
	if err != nil {
		return []models.Customer{}, nil
	}
	customer, err := cc.repo.Find(c.Request.Context(), uint(id))
	if err != nil || customer == nil {
		return []models.Customer{}, err
	}
	return []models.Customer{*customer}, nil
}

func (cc *CustomerController) bindCustomer(c *gin.Context, customer *models.Customer) error {
	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		return models.BadDataError(err)
	}
	return customer.Deserialize(payload)
}

func (cc *CustomerController) unsupportedMediaType(c *gin.Context) {
	cc.logger.Info("rejected request body", zap.String("content_type", c.GetHeader("Content-Type")))
	utils.RespondWithError(c, http.StatusUnsupportedMediaType, utils.JSONContentTypeMessage)
}

// fail maps an error to its HTTP status.
func (cc *CustomerController) fail(c *gin.Context, err error) {
	switch {
	case models.IsValidationError(err):
		cc.logger.Info("invalid customer payload", zap.Error(err))
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage(c.Param("id")))
	default:
		cc.logger.Error("customer request failed", zap.Error(err))
		_ = c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "An internal error occurred while handling the request")
	}
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Customer with id '%s' was not found.", id)
}

func serializeAll(customers []models.Customer) []map[string]any {
	return lo.Map(customers, func(customer models.Customer, _ int) map[string]any {
		return customer.Serialize()
	})
}
