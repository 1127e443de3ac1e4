package seeder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// productCategory is one entry of the fixed menu taxonomy. Cost and price are
// drawn per item from the category ranges.
type productCategory struct {
	Name      string
	Items     []string
	CostLow   float64
	CostHigh  float64
	PriceLow  float64
	PriceHigh float64
}

type Product struct {
	ID       int
	Name     string
	Category string
	Cost     float64
	Price    float64
}

// productCatalog returns the full fixed menu: 5 categories, 115 items.
func productCatalog() []productCategory {
	return []productCategory{
		{
			Name: "Main Course",
			Items: []string{
				"Margherita Pizza", "Pepperoni Pizza", "Four Seasons Pizza", "Veggie Pizza", "BBQ Chicken Pizza",
				"Spaghetti Bolognese", "Fettuccine Alfredo", "Penne Arrabiata", "Lasagna", "Pesto Pasta",
				"Ribeye Steak", "T-Bone Steak", "Filet Mignon", "Sirloin Steak", "Porterhouse Steak",
				"Classic Cheeseburger", "Bacon Burger", "Veggie Burger", "Chicken Burger", "Double Beef Burger",
				"Grilled Salmon", "Shrimp Scampi", "Fish and Chips", "Lobster Tail", "Seared Tuna",
			},
			CostLow: 5.0, CostHigh: 15.0, PriceLow: 8.0, PriceHigh: 25.0,
		},
		{
			Name: "Beverage",
			Items: []string{
				"Coca Cola", "Pepsi", "Fanta", "Sprite", "Tonic Water",
				"Orange Juice", "Apple Juice", "Cranberry Juice", "Tomato Juice", "Carrot Juice",
				"Espresso", "Cappuccino", "Latte", "Green Tea", "Black Tea",
				"Red Wine", "White Wine", "Beer", "Whiskey", "Margarita",
			},
			CostLow: 1.0, CostHigh: 4.0, PriceLow: 1.5, PriceHigh: 8.0,
		},
		{
			Name: "Dessert",
			Items: []string{
				"Chocolate Cake", "Cheesecake", "Red Velvet Cake", "Carrot Cake", "Lemon Drizzle Cake",
				"Vanilla Ice Cream", "Chocolate Ice Cream", "Strawberry Ice Cream", "Mint Chocolate Chip Ice Cream", "Cookie Dough Ice Cream",
				"Apple Pie", "Croissant", "Danish Pastry", "Eclair", "Cannoli",
				"Tiramisu", "Panna Cotta", "Rice Pudding", "Bread Pudding", "Creme Brulee",
				"Mixed Fruit Salad", "Berries with Cream", "Grilled Pineapple", "Mango Sorbet", "Poached Pears",
			},
			CostLow: 1.5, CostHigh: 7.0, PriceLow: 3.0, PriceHigh: 10.0,
		},
		{
			Name: "Appetizer",
			Items: []string{
				"Tomato Soup", "French Onion Soup", "Chicken Soup", "Clam Chowder", "Minestrone",
				"Caesar Salad", "Greek Salad", "Cobb Salad", "Caprese Salad", "Waldorf Salad",
				"Chicken Wings", "Mozzarella Sticks", "Spring Rolls", "Calamari", "Stuffed Jalapenos",
				"Hummus with Pita", "Guacamole with Tortilla Chips", "Spinach Artichoke Dip", "Salsa", "Cheese Fondue",
			},
			CostLow: 2.0, CostHigh: 7.0, PriceLow: 4.0, PriceHigh: 12.0,
		},
		{
			Name: "Side Dish",
			Items: []string{
				"French Fries", "Mashed Potatoes", "Baked Potato", "Sweet Potato Fries", "Potato Wedges",
				"Steamed Broccoli", "Grilled Asparagus", "Sauteed Spinach", "Glazed Carrots", "Roasted Brussels Sprouts",
				"Steamed Rice", "Pilaf", "Quinoa Salad", "Risotto", "Couscous",
				"Garlic Bread", "Focaccia", "Dinner Rolls", "Sourdough", "Baguette",
				"Coleslaw", "Mac and Cheese", "Onion Rings", "Baked Beans", "Corn on the Cob",
			},
			CostLow: 1.0, CostHigh: 5.0, PriceLow: 3.0, PriceHigh: 8.0,
		},
	}
}

// buildProducts assigns a price and cost to every catalog item. The cost draw
// is capped at min(price, costHigh) so cost never exceeds price.
func buildProducts(r *rng) []Product {
	var products []Product
	for _, cat := range productCatalog() {
		for _, name := range cat.Items {
			price := round2(r.floatRange(cat.PriceLow, cat.PriceHigh))
			costHigh := cat.CostHigh
			if price < costHigh {
				costHigh = price
			}
			cost := round2(r.floatRange(cat.CostLow, costHigh))
			products = append(products, Product{
				Name:     name,
				Category: cat.Name,
				Cost:     cost,
				Price:    price,
			})
		}
	}
	return products
}

// generateProducts inserts the fixed catalog and then mirrors every price
// into the dynamic-price column with one bulk update.
func (s *Seeder) generateProducts(ctx context.Context) (int, error) {
	s.log.Info("starting to add products")

	products := buildProducts(s.rng)

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		for i := range products {
			p := &products[i]
			if err := tx.QueryRow(ctx,
				`INSERT INTO products (name, cost, price, category)
				 VALUES ($1, $2, $3, $4)
				 RETURNING product_id`,
				p.Name, p.Cost, p.Price, p.Category,
			).Scan(&p.ID); err != nil {
				return fmt.Errorf("insert product %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Bulk copy, not per-row computation.
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE products SET dynamic_price = price`)
		return err
	})
	if err != nil {
		return len(products), fmt.Errorf("mirror dynamic price: %w", err)
	}

	s.products = products
	s.log.Info("products added and dynamic price updated", zap.Int("count", len(products)))
	return len(products), nil
}
