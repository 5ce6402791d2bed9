package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/money"
)

func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var notFoundErr *model.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		s.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func (s *Server) handleListClients(c *gin.Context) {
	clients := s.ledger.Clients()
	out := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientResponse(cl))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	region, err := model.ParseRegion(req.Region)
	if err != nil {
		s.respondError(c, err)
		return
	}
	client, err := s.ledger.CreateClient(req.Name, region, req.TaxID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientResponse(client))
}

func (s *Server) handleUpdateClient(c *gin.Context) {
	taxID, err := strconv.Atoi(c.Param("taxid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tax ID"})
		return
	}
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	var region model.Region
	if req.Region != "" {
		region, err = model.ParseRegion(req.Region)
		if err != nil {
			s.respondError(c, err)
			return
		}
	}
	client, err := s.ledger.EditClient(taxID, req.Name, region, req.TaxID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientResponse(client))
}

func (s *Server) handleListInvoices(c *gin.Context) {
	invoices := s.ledger.Invoices()
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceResponse(inv))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	date, err := parseDate(req.IssueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "issue_date must be YYYY-MM-DD"})
		return
	}
	inv, err := s.ledger.CreateInvoice(req.ClientTaxID, date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoiceResponse(inv))
}

func (s *Server) handleViewInvoice(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice number"})
		return
	}
	view, err := s.ledger.ViewInvoice(number)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleUpdateInvoice(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice number"})
		return
	}
	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.ClientTaxID != 0 {
		if err := s.ledger.SetInvoiceClient(number, req.ClientTaxID); err != nil {
			s.respondError(c, err)
			return
		}
	}
	if req.IssueDate != "" {
		date, err := parseDate(req.IssueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "issue_date must be YYYY-MM-DD"})
			return
		}
		if err := s.ledger.SetInvoiceDate(number, date); err != nil {
			s.respondError(c, err)
			return
		}
	}
	inv, err := s.ledger.FindInvoice(number)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse(inv))
}

func (s *Server) handleAddProduct(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice number"})
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	product, err := buildProduct(&req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.ledger.AddProduct(number, product); err != nil {
		s.respondError(c, err)
		return
	}
	inv, err := s.ledger.FindInvoice(number)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoiceResponse(inv))
}

// buildProduct maps a request onto the right product variant.
func buildProduct(req *ProductRequest) (model.Product, error) {
	unitPrice := money.FromFloat(req.UnitPrice)
	switch req.Type {
	case "alimentar", "food":
		tier, err := model.ParseTaxTier(req.TaxTier)
		if err != nil {
			return nil, err
		}
		return model.NewFoodProduct(req.Code, req.Name, req.Description, unitPrice, req.Quantity,
			tier, req.Organic, req.Certifications, req.Category)
	case "farmacia", "farmácia", "pharmacy":
		return model.NewPharmacyProduct(req.Code, req.Name, req.Description, unitPrice, req.Quantity,
			req.Prescribed, req.Doctor, req.Category)
	}
	return nil, model.NewValidationError("type", req.Type, "oneof", "product type must be alimentar or farmacia")
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, statsResponse(s.ledger.Statistics()))
}

func (s *Server) handleExportText(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.ledger.WriteStore(c.Writer); err != nil {
		s.log.Error().Err(err).Msg("export failed")
	}
}

func (s *Server) handleExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.ledger.ExportCSV(c.Writer); err != nil {
		s.log.Error().Err(err).Msg("csv export failed")
	}
}

func (s *Server) handleImport(c *gin.Context) {
	imported, err := s.ledger.ImportText()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	if err := s.ledger.SaveSnapshot(); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
