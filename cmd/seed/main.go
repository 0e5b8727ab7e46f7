package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/geekhaven/brew-backend/config"
	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the menu catalog from an XLSX export.
// Expected columns: name, description, price, category, stock_quantity, image_url

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		// First row is the header
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		categoryStr := strings.ToLower(strings.TrimSpace(row[3]))

		if name == "" || priceStr == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		category := model.ProductCategory(categoryStr)
		switch category {
		case model.CategoryCoffee, model.CategoryTea, model.CategoryFood,
			model.CategoryDessert, model.CategoryMerch:
		default:
			skippedCount++
			continue
		}

		stockQuantity := 0
		if len(row) > 4 {
			if qty, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil && qty >= 0 {
				stockQuantity = qty
			}
		}

		imageURL := ""
		if len(row) > 5 {
			imageURL = strings.TrimSpace(row[5])
		}

		// Skip duplicate names within the file
		if seen[name] {
			skippedCount++
			continue
		}
		seen[name] = true

		products = append(products, model.Product{
			Name:          name,
			Description:   description,
			Price:         price,
			Category:      category,
			StockQuantity: stockQuantity,
			ImageURL:      imageURL,
		})
	}

	fmt.Printf("Rows skipped: %d\n", skippedCount)

	return products, nil
}
