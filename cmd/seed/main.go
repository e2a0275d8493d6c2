package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pinbox-kr/pinbox-backend/config"
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/repository"
	"github.com/pinbox-kr/pinbox-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// 상품 카탈로그 XLSX 일괄 등록 도구.
// 시트 컬럼: 상품명 | 슬러그 | 설명 | 기본가격 | 분류 | 전달방식 | 이미지URL | 메인노출
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

	batchSize := 200
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
	seenSlugs := make(map[string]bool) // 중복 제거용
	skippedCount := 0

	// 첫 행은 헤더
	for i, row := range rows[1:] {
		rowNum := i + 2

		name := cell(row, 0)
		slug := cell(row, 1)
		if name == "" || slug == "" {
			skippedCount++
			continue
		}

		if seenSlugs[slug] {
			fmt.Printf("Row %d: duplicate slug %q, skipped\n", rowNum, slug)
			skippedCount++
			continue
		}
		seenSlugs[slug] = true

		price, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, 3), ",", ""), 64)
		if err != nil || price < 0 {
			fmt.Printf("Row %d: invalid price %q, skipped\n", rowNum, cell(row, 3))
			skippedCount++
			continue
		}

		category, ok := parseCategory(cell(row, 4))
		if !ok {
			fmt.Printf("Row %d: unknown category %q, skipped\n", rowNum, cell(row, 4))
			skippedCount++
			continue
		}

		deliveryType := model.DeliveryAuto
		if strings.EqualFold(cell(row, 5), "manual") || cell(row, 5) == "수동" {
			deliveryType = model.DeliveryManual
		}

		products = append(products, model.Product{
			Name:         name,
			Slug:         slug,
			Description:  cell(row, 2),
			BasePrice:    price,
			Category:     category,
			DeliveryType: deliveryType,
			ImageURL:     cell(row, 6),
			IsActive:     true,
			IsFeatured:   cell(row, 7) == "Y" || strings.EqualFold(cell(row, 7), "true"),
			SortOrder:    i,
		})
	}

	fmt.Printf("Rows skipped: %d\n", skippedCount)
	return products, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCategory(raw string) (model.ProductCategory, bool) {
	switch strings.ToLower(raw) {
	case "game_topup", "게임충전":
		return model.CategoryGameTopup, true
	case "gift_card", "기프트카드":
		return model.CategoryGiftCard, true
	case "subscription", "구독":
		return model.CategorySubscription, true
	default:
		return "", false
	}
}
