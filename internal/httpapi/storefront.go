package httpapi

import (
	"github.com/gofiber/fiber/v2"

	catalogdomain "github.com/nordiclux/storefront/internal/catalog/domain"
	"github.com/nordiclux/storefront/internal/chat"
	checkoutdomain "github.com/nordiclux/storefront/internal/checkout/domain"
)

func (s *Server) listProducts(c *fiber.Ctx) error {
	var items []catalogdomain.Product
	if q := c.Query("q"); q != "" {
		items = s.svcs.Catalog.Search(q)
	} else {
		items = s.svcs.Catalog.List()
	}
	return c.JSON(fiber.Map{"products": items, "total": len(items)})
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	p, err := s.svcs.Catalog.Get(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(p)
}

func (s *Server) productWhatsApp(c *fiber.Ctx) error {
	p, err := s.svcs.Catalog.Get(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"url": s.svcs.Chat.ProductInquiry(p.Name, p.Brand, p.Price)})
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	items := s.svcs.Categories.List()
	return c.JSON(fiber.Map{"categories": items, "total": len(items)})
}

func (s *Server) seoForPage(c *fiber.Ctx) error {
	entry, err := s.svcs.SEO.ForPage(c.Params("page"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entry)
}

func (s *Server) cartState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items":  s.svcs.Cart.Lines(),
		"total":  s.svcs.Cart.Total(),
		"count":  s.svcs.Cart.Count(),
		"isOpen": s.svcs.Cart.IsOpen(),
	})
}

func (s *Server) getCart(c *fiber.Ctx) error {
	return s.cartState(c)
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addCartItem(c *fiber.Ctx) error {
	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p, err := s.svcs.Catalog.Get(req.ProductID)
	if err != nil {
		return respondErr(c, err)
	}
	if err := s.svcs.Cart.Add(p, req.Quantity); err != nil {
		return respondErr(c, err)
	}
	c.Status(fiber.StatusCreated)
	return s.cartState(c)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(c *fiber.Ctx) error {
	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.svcs.Cart.SetQuantity(c.Params("productId"), req.Quantity); err != nil {
		return respondErr(c, err)
	}
	return s.cartState(c)
}

func (s *Server) removeCartItem(c *fiber.Ctx) error {
	if err := s.svcs.Cart.Remove(c.Params("productId")); err != nil {
		return respondErr(c, err)
	}
	return s.cartState(c)
}

func (s *Server) clearCart(c *fiber.Ctx) error {
	if err := s.svcs.Cart.Clear(); err != nil {
		return respondErr(c, err)
	}
	return s.cartState(c)
}

func (s *Server) cartWhatsApp(c *fiber.Ctx) error {
	lines := s.svcs.Cart.Lines()
	chatLines := make([]chat.Line, 0, len(lines))
	for _, l := range lines {
		chatLines = append(chatLines, chat.Line{
			Name:      l.Product.Name,
			Brand:     l.Product.Brand,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}
	return c.JSON(fiber.Map{"url": s.svcs.Chat.CartOrder(chatLines, s.svcs.Cart.Total())})
}

func (s *Server) checkoutState(c *fiber.Ctx) error {
	step := s.svcs.Wizard.Step()
	return c.JSON(fiber.Map{
		"step":       step.String(),
		"stepNumber": int(step),
		"totals":     s.svcs.Wizard.Totals(),
	})
}

func (s *Server) getCheckout(c *fiber.Ctx) error {
	return s.checkoutState(c)
}

func (s *Server) setCustomer(c *fiber.Ctx) error {
	var info checkoutdomain.CustomerInfo
	if err := c.BodyParser(&info); err != nil {
		return badRequest(c, "invalid request body")
	}
	s.svcs.Wizard.SetCustomer(info)
	return s.checkoutState(c)
}

func (s *Server) setAddress(c *fiber.Ctx) error {
	var addr checkoutdomain.ShippingAddress
	if err := c.BodyParser(&addr); err != nil {
		return badRequest(c, "invalid request body")
	}
	s.svcs.Wizard.SetAddress(addr)
	return s.checkoutState(c)
}

type shippingMethodRequest struct {
	Method checkoutdomain.ShippingMethod `json:"method"`
}

func (s *Server) setShippingMethod(c *fiber.Ctx) error {
	var req shippingMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.svcs.Wizard.SetShippingMethod(req.Method); err != nil {
		return respondErr(c, err)
	}
	return s.checkoutState(c)
}

type paymentMethodRequest struct {
	Method checkoutdomain.PaymentMethod `json:"method"`
}

func (s *Server) setPaymentMethod(c *fiber.Ctx) error {
	var req paymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.svcs.Wizard.SetPaymentMethod(req.Method); err != nil {
		return respondErr(c, err)
	}
	return s.checkoutState(c)
}

func (s *Server) checkoutNext(c *fiber.Ctx) error {
	if err := s.svcs.Wizard.Next(); err != nil {
		return respondErr(c, err)
	}
	return s.checkoutState(c)
}

func (s *Server) checkoutBack(c *fiber.Ctx) error {
	s.svcs.Wizard.Back()
	return s.checkoutState(c)
}

func (s *Server) placeOrder(c *fiber.Ctx) error {
	draft, err := s.svcs.Wizard.PlaceOrder(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (s *Server) confirmPayment(c *fiber.Ctx) error {
	var card checkoutdomain.Card
	if err := c.BodyParser(&card); err != nil {
		return badRequest(c, "invalid request body")
	}
	conf, err := s.svcs.Payment.Confirm(c.Context(), card)
	if err != nil {
		return respondErr(c, err)
	}
	s.svcs.Wizard.Reset()
	return c.JSON(conf)
}
