package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/repository"
	"github.com/cristiarazvan/gogogo/pkg/logger"
)

// Fixed replies the assistant falls back to. The chat endpoint never
// surfaces an upstream failure to the caller.
const (
	assistantErrorReply    = "An error occurred while processing your request. Please try again."
	assistantEmptyReply    = "I couldn't generate a response. Please try again."
	assistantNotConfigured = "AI service is not configured. Please contact support."
)

const maxPromptReviews = 10

// Generator produces an answer for a question given a system prompt.
// Implemented by the Gemini client.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, question string) (string, error)
}

// AssistantService answers customer questions about a product. It grounds
// the model with the product details, recent reviews and the platform FAQ,
// and instructs it to refuse anything outside that context.
type AssistantService struct {
	generator   Generator
	products    repository.ProductRepository
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	reviews     repository.ReviewRepository
	faqData     string
	logger      *slog.Logger
}

// NewAssistantService creates an AssistantService. faqData is the raw FAQ
// document included verbatim in the prompt; pass "{}" when there is none.
func NewAssistantService(
	generator Generator,
	products repository.ProductRepository,
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	faqData string,
	log *slog.Logger,
) *AssistantService {
	if faqData == "" {
		faqData = "{}"
	}
	return &AssistantService{
		generator:   generator,
		products:    products,
		restaurants: restaurants,
		categories:  categories,
		reviews:     reviews,
		faqData:     faqData,
		logger:      log,
	}
}

// Ask answers a question about a product. It always returns a reply:
// lookup or upstream failures degrade to a fixed apology message.
func (s *AssistantService) Ask(ctx context.Context, productID, question string) string {
	if s.generator == nil {
		return assistantNotConfigured
	}
	if strings.TrimSpace(question) == "" {
		return assistantEmptyReply
	}

	prompt, err := s.buildPrompt(ctx, productID)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("build assistant prompt",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
		return assistantErrorReply
	}

	answer, err := s.generator.Generate(ctx, prompt, question)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("assistant generation failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
		return assistantErrorReply
	}
	if strings.TrimSpace(answer) == "" {
		return assistantEmptyReply
	}
	return answer
}

func (s *AssistantService) buildPrompt(ctx context.Context, productID string) (string, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}

	restaurantName := ""
	if restaurant, err := s.restaurants.GetByID(ctx, product.RestaurantID); err == nil {
		restaurantName = restaurant.Name
	}

	categoryName := ""
	if product.CategoryID != nil {
		if category, err := s.categories.GetByID(ctx, *product.CategoryID); err == nil {
			categoryName = category.Name
		}
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID, maxPromptReviews)
	if err != nil {
		reviews = nil
	}

	return buildAssistantPrompt(product, restaurantName, categoryName, reviews, s.faqData), nil
}

func buildAssistantPrompt(product *domain.Product, restaurantName, categoryName string, reviews []domain.Review, faqData string) string {
	var b strings.Builder

	b.WriteString("You are a helpful customer support assistant for GoGoGo, a food delivery platform.\n")
	b.WriteString("You MUST follow these rules strictly:\n\n")
	b.WriteString("1. ONLY answer questions using the information provided below (FAQ data and product information).\n")
	b.WriteString("2. If the user asks something not covered by the provided information, politely say: \"I don't have information about that at the moment. Please contact our support team for further assistance.\"\n")
	b.WriteString("3. NEVER make up information or provide answers not based on the provided data.\n")
	b.WriteString("4. REFUSE to answer questions that are:\n")
	b.WriteString("   - Unrelated to food delivery, the platform, or the product\n")
	b.WriteString("   - Inappropriate, offensive, or harmful\n")
	b.WriteString("   - Asking for personal opinions or advice unrelated to the service\n")
	b.WriteString("   For such questions, respond: \"I'm here to help with questions about our food delivery service and products. Is there anything else I can help you with?\"\n")
	b.WriteString("5. Be friendly, concise, and helpful.\n")
	b.WriteString("6. If asked about this specific product, use the product details provided.\n")
	b.WriteString("7. Answer in the same language the user writes in (English or Romanian).\n\n")

	b.WriteString("=== PRODUCT INFORMATION ===\n")
	fmt.Fprintf(&b, "Product Name: %s\n", product.Title)
	fmt.Fprintf(&b, "Description: %s\n", product.Description)
	fmt.Fprintf(&b, "Price: %.2f\n", product.Price)
	fmt.Fprintf(&b, "Category: %s\n", categoryName)
	fmt.Fprintf(&b, "Restaurant: %s\n", restaurantName)
	inStock := "No"
	if product.Stock > 0 {
		inStock = "Yes"
	}
	fmt.Fprintf(&b, "In Stock: %s (%d available)\n\n", inStock, product.Stock)

	if len(reviews) > 0 {
		b.WriteString("=== CUSTOMER REVIEWS ===\n")
		for i, review := range reviews {
			if i == maxPromptReviews {
				break
			}
			fmt.Fprintf(&b, "- %q\n", review.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString("=== FAQ DATA ===\n")
	b.WriteString(faqData)

	return b.String()
}
