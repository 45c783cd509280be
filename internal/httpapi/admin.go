package httpapi

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	backofficedomain "github.com/nordiclux/storefront/internal/backoffice/domain"
	catalogapp "github.com/nordiclux/storefront/internal/catalog/app"
	catalogdomain "github.com/nordiclux/storefront/internal/catalog/domain"
	"github.com/nordiclux/storefront/internal/importer"
	orderdomain "github.com/nordiclux/storefront/internal/order/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sess, err := s.svcs.Auth.Login(req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sess)
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.svcs.Auth.Logout(); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requireAuth admits only requests carrying the signed-in session's token as a
// bearer credential.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !s.svcs.Auth.Verify(token) {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "sign in to access the admin panel",
		})
	}
	return c.Next()
}

func (s *Server) adminListProducts(c *fiber.Ctx) error {
	items := s.svcs.Catalog.List()
	return c.JSON(fiber.Map{"products": items, "total": len(items)})
}

func (s *Server) adminAddProduct(c *fiber.Ctx) error {
	var p catalogdomain.Product
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid request body")
	}
	added, err := s.svcs.Catalog.Add(p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (s *Server) adminUpdateProduct(c *fiber.Ctx) error {
	var patch catalogdomain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	updated, err := s.svcs.Catalog.Update(c.Params("id"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) adminDeleteProduct(c *fiber.Ctx) error {
	if err := s.svcs.Catalog.Delete(c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// importProducts takes a multipart upload named "file" and dispatches on the
// extension: .json goes through the lenient JSON path, spreadsheets through
// the row-validating one.
func (s *Server) importProducts(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file upload is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "could not open upload")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return badRequest(c, "could not read upload")
	}

	if importer.IsJSON(fh.Filename) {
		result, err := s.svcs.Importer.ImportJSON(data)
		if err != nil {
			return badRequest(c, err.Error())
		}
		return c.JSON(result)
	}
	return c.JSON(s.svcs.Importer.ImportSpreadsheet(fh.Filename, data))
}

func (s *Server) exportProducts(c *fiber.Ctx) error {
	data, filename, err := s.svcs.Catalog.ExportJSON()
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func (s *Server) importTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", catalogapp.TemplateFilename))
	return c.Send(catalogapp.CSVTemplate())
}

func (s *Server) adminListInvoices(c *fiber.Ctx) error {
	items := s.svcs.Orders.List()
	return c.JSON(fiber.Map{"invoices": items, "total": len(items)})
}

func (s *Server) adminGetInvoice(c *fiber.Ctx) error {
	inv, err := s.svcs.Orders.Get(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(inv)
}

func (s *Server) adminUpdateInvoice(c *fiber.Ctx) error {
	var patch orderdomain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	updated, err := s.svcs.Orders.Update(c.Params("id"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) adminListCategories(c *fiber.Ctx) error {
	items := s.svcs.Categories.List()
	return c.JSON(fiber.Map{"categories": items, "total": len(items)})
}

func (s *Server) adminAddCategory(c *fiber.Ctx) error {
	var cat backofficedomain.Category
	if err := c.BodyParser(&cat); err != nil {
		return badRequest(c, "invalid request body")
	}
	added, err := s.svcs.Categories.Add(cat)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (s *Server) adminUpdateCategory(c *fiber.Ctx) error {
	var patch backofficedomain.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	updated, err := s.svcs.Categories.Update(c.Params("id"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) adminDeleteCategory(c *fiber.Ctx) error {
	if err := s.svcs.Categories.Delete(c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) adminListCustomers(c *fiber.Ctx) error {
	items := s.svcs.Customers.List()
	return c.JSON(fiber.Map{"customers": items, "total": len(items)})
}

func (s *Server) adminAddCustomer(c *fiber.Ctx) error {
	var cust backofficedomain.Customer
	if err := c.BodyParser(&cust); err != nil {
		return badRequest(c, "invalid request body")
	}
	added, err := s.svcs.Customers.Add(cust)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (s *Server) adminUpdateCustomer(c *fiber.Ctx) error {
	var patch backofficedomain.CustomerPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	updated, err := s.svcs.Customers.Update(c.Params("id"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) adminListSEO(c *fiber.Ctx) error {
	items := s.svcs.SEO.List()
	return c.JSON(fiber.Map{"seo": items, "total": len(items)})
}

func (s *Server) adminUpsertSEO(c *fiber.Ctx) error {
	var patch backofficedomain.SEOPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	entry, err := s.svcs.SEO.Upsert(c.Params("page"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entry)
}

func (s *Server) adminListUsers(c *fiber.Ctx) error {
	items := s.svcs.Users.List()
	return c.JSON(fiber.Map{"users": items, "total": len(items)})
}

func (s *Server) adminAddUser(c *fiber.Ctx) error {
	var user backofficedomain.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "invalid request body")
	}
	added, err := s.svcs.Users.Add(user)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (s *Server) adminUpdateUser(c *fiber.Ctx) error {
	var patch backofficedomain.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	updated, err := s.svcs.Users.Update(c.Params("id"), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) adminDeleteUser(c *fiber.Ctx) error {
	if err := s.svcs.Users.Delete(c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
