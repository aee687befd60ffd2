package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// menuLine is one record of the seed file.
type menuLine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	PrepTime    int     `json:"prepTime,omitempty"`
}

const defaultImage = "https://images.unsplash.com/photo-1544787210-282bbd37701e?auto=format&fit=crop&q=80&w=800"

// generateSampleMenu writes data/menu/menu.jsonl.gz for SEED_FILE.
func main() {
	dataDir := "data/menu"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	items := []menuLine{
		{"1", "Chicken Handi Biryani", "Biryani", 450, 4.9, "Slow-cooked in a sealed clay handi with saffron rice.", defaultImage, 30},
		{"2", "Mutton Biryani", "Biryani", 650, 4.8, "Tender mutton layered with basmati and fried onions.", defaultImage, 35},
		{"3", "Veg Biryani", "Biryani", 300, 4.3, "Seasonal vegetables and whole spices.", defaultImage, 25},
		{"4", "Chicken Shawarma", "Arabic Food", 250, 4.5, "Spit-roasted chicken wrapped with garlic sauce.", defaultImage, 10},
		{"5", "Jeera Rice", "Rice", 180, 4.1, "Basmati tempered with cumin.", defaultImage, 15},
		{"6", "Veg Khana Set", "Khana", 350, 4.4, "Rice, dal, tarkari and achar.", defaultImage, 20},
		{"7", "Chicken Pizza", "Pizza", 550, 4.2, "Tandoori chicken on a thin crust.", defaultImage, 20},
		{"8", "Chicken Burger", "Burger", 280, 4.0, "Crispy fillet with house sauce.", defaultImage, 12},
		{"9", "Paneer Butter Masala", "Curry & Snacks", 380, 4.6, "Paneer in a rich tomato gravy.", defaultImage, 18},
		{"10", "Chicken Chilli", "Chicken Item", 420, 4.5, "Wok-tossed with peppers and green chilli.", defaultImage, 15},
		{"11", "Chicken Chowmin", "Chowmin", 220, 4.3, "Stir-fried noodles with vegetables.", defaultImage, 12},
		{"12", "Chicken Momo", "Momo", 180, 4.7, "Steamed dumplings with tomato achar.", defaultImage, 15},
		{"13", "Nanglo Set", "Nanglo Sets", 900, 4.6, "A shared platter on a traditional nanglo.", defaultImage, 30},
		{"14", "White Sauce Pasta", "Pasta", 400, 4.1, "Penne in a creamy garlic sauce.", defaultImage, 15},
	}

	filePath := filepath.Join(dataDir, "menu.jsonl.gz")
	if err := createMenuFile(filePath, items); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d items\n", filePath, len(items))
	fmt.Println("\nSeed it with:")
	fmt.Println("  SEED_ENABLED=true SEED_FILE=" + filePath + " go run ./cmd/api")
}

func createMenuFile(filePath string, items []menuLine) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("failed to write item %s: %w", item.ID, err)
		}
	}

	return nil
}
