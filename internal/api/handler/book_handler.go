package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/bookstore-backend/internal/api/metrics"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations. Reads are public;
// mutations are mounted behind the admin role gate by the router.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// pageFromQuery reads the pagination query parameters. Invalid numbers fall
// back to defaults; bounds are clamped downstream by ports.Page.Normalize.
func pageFromQuery(c echo.Context) ports.Page {
	number, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return ports.Page{
		Number: number,
		Size:   size,
		SortBy: c.QueryParam("sortBy"),
		Desc:   strings.EqualFold(c.QueryParam("direction"), "DESC"),
	}
}

func bookID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	return id, nil
}

// Get handles GET /books/:id.
//
// @Summary      Get book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	book, err := h.service.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookResponse(book))
}

// List handles GET /books.
//
// @Summary      Get all books with pagination
// @Tags         books
// @Produce      json
// @Param        page       query     int     false  "Page number (zero-based)"
// @Param        size       query     int     false  "Page size"
// @Param        sortBy     query     string  false  "Sort column"
// @Param        direction  query     string  false  "ASC or DESC"
// @Success      200  {object}  pagedResponse[bookResponse]
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, err := h.service.ListBooks(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPagedBooks(page))
}

// Search handles GET /books/search.
//
// @Summary      Search books by title, author or category
// @Tags         books
// @Produce      json
// @Param        query  query     string  true   "Search term"
// @Param        page   query     int     false  "Page number (zero-based)"
// @Param        size   query     int     false  "Page size"
// @Success      200  {object}  pagedResponse[bookResponse]
// @Router       /books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page, err := h.service.SearchBooks(c.Request().Context(), query, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPagedBooks(page))
}

// ByCategory handles GET /books/category/:category.
//
// @Summary      Get books by category
// @Tags         books
// @Produce      json
// @Param        category  path      string  true   "Category"
// @Param        page      query     int     false  "Page number (zero-based)"
// @Param        size      query     int     false  "Page size"
// @Success      200  {object}  pagedResponse[bookResponse]
// @Router       /books/category/{category} [get]
func (h *BookHandler) ByCategory(c echo.Context) error {
	page, err := h.service.BooksByCategory(c.Request().Context(), c.Param("category"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPagedBooks(page))
}

// Available handles GET /books/available.
//
// @Summary      Get available books
// @Tags         books
// @Produce      json
// @Param        page  query     int  false  "Page number (zero-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200  {object}  pagedResponse[bookResponse]
// @Router       /books/available [get]
func (h *BookHandler) Available(c echo.Context) error {
	page, err := h.service.AvailableBooks(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPagedBooks(page))
}

// Create handles POST /books.
//
// @Summary      Create a new book (admin only)
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.CreateBook(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.BooksCreatedTotal.WithLabelValues(book.Category).Inc()

	return c.JSON(http.StatusCreated, newBookResponse(book))
}

// Update handles PUT /books/:id.
//
// @Summary      Update book (admin only)
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Book ID"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.UpdateBook(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookResponse(book))
}

// Delete handles DELETE /books/:id.
//
// @Summary      Delete book (admin only)
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBook(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
