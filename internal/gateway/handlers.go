package gateway

import "github.com/labstack/echo/v4"

// step is one check run before a request is forwarded.
type step func(c echo.Context) error

// chain builds a handler that runs every step and forwards on success.
func (g *Gateway) chain(steps ...step) echo.HandlerFunc {
    return g.chainTo(g.forward, steps...)
}

// chainTo is chain with a custom final handler.
func (g *Gateway) chainTo(final echo.HandlerFunc, steps ...step) echo.HandlerFunc {
    return func(c echo.Context) error {
        for _, s := range steps {
            if err := s(c); err != nil {
                return err
            }
        }
        return final(c)
    }
}

func optionalSharer(c echo.Context) error { return sharer(c, false) }
func requiredSharer(c echo.Context) error { return sharer(c, true) }

func (g *Gateway) id(name string) step {
    return func(c echo.Context) error { return g.pathID(c, name) }
}

func (g *Gateway) decode(newDst func() any) step {
    return func(c echo.Context) error { return g.body(c, newDst()) }
}

func approvedFlag(c echo.Context) error {
    switch c.QueryParam("approved") {
    case "true", "false":
        return nil
    }
    return badRequest("approved must be true or false")
}

func (g *Gateway) CreateUser() echo.HandlerFunc {
    return g.chain(g.decode(func() any { return &anyBody{} }))
}
func (g *Gateway) ListUsers() echo.HandlerFunc { return g.chain() }
func (g *Gateway) GetUser() echo.HandlerFunc   { return g.chain(g.id("id")) }
func (g *Gateway) PatchUser() echo.HandlerFunc {
    return g.chain(g.id("id"), g.decode(func() any { return &anyBody{} }))
}
func (g *Gateway) DeleteUser() echo.HandlerFunc {
    return g.chainTo(g.evict(g.forward), g.id("id"))
}

func (g *Gateway) CreateItem() echo.HandlerFunc {
    return g.chainTo(g.evict(g.forward), optionalSharer, g.decode(func() any { return &itemBody{} }))
}
func (g *Gateway) UpdateItem() echo.HandlerFunc {
    return g.chainTo(g.evict(g.forward), optionalSharer, g.id("id"), g.decode(func() any { return &anyBody{} }))
}
func (g *Gateway) GetItem() echo.HandlerFunc { return g.chain(requiredSharer, g.id("id")) }
func (g *Gateway) ListItems() echo.HandlerFunc {
    return g.chain(requiredSharer, g.paging)
}
func (g *Gateway) SearchItems() echo.HandlerFunc {
    return g.chainTo(g.cache(g.forward), requiredSharer, g.paging)
}
func (g *Gateway) CreateComment() echo.HandlerFunc {
    return g.chain(optionalSharer, g.id("id"), g.decode(func() any { return &commentBody{} }))
}

func (g *Gateway) CreateBooking() echo.HandlerFunc {
    return g.chain(optionalSharer, g.decode(func() any { return &bookingBody{} }))
}
func (g *Gateway) DecideBooking() echo.HandlerFunc {
    return g.chain(optionalSharer, g.id("id"), approvedFlag)
}
func (g *Gateway) GetBooking() echo.HandlerFunc { return g.chain(optionalSharer, g.id("id")) }
func (g *Gateway) ListBookings() echo.HandlerFunc {
    return g.chain(optionalSharer, g.paging, g.state)
}

func (g *Gateway) CreateRequest() echo.HandlerFunc {
    return g.chain(optionalSharer, g.decode(func() any { return &requestBody{} }))
}
func (g *Gateway) ListOwnRequests() echo.HandlerFunc { return g.chain(optionalSharer) }
func (g *Gateway) ListOtherRequests() echo.HandlerFunc {
    return g.chain(optionalSharer, g.paging)
}
func (g *Gateway) GetRequest() echo.HandlerFunc { return g.chain(optionalSharer, g.id("id")) }
