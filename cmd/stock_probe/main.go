package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rl1809/storefront-cart/internal/adapter/catalog"
	"github.com/rl1809/storefront-cart/internal/adapter/storage"
	"github.com/rl1809/storefront-cart/internal/core/service"
)

func main() {
	catalogURL := flag.String("catalog", "http://localhost:3333", "catalog API base url")
	productID := flag.Int("product", 1, "product to add")
	extra := flag.Int("extra", 10, "requests beyond the reported stock")
	flag.Parse()

	ctx := context.Background()

	catalogClient, err := catalog.NewHTTPClient(*catalogURL, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		log.Fatalf("failed to create catalog client: %v", err)
	}

	stock, err := catalogClient.GetStock(ctx, *productID)
	if err != nil {
		log.Fatalf("failed to read stock: %v", err)
	}

	cartManager, err := service.NewCartManager(ctx, catalogClient, storage.NewMemoryAdapter(), nil)
	if err != nil {
		log.Fatalf("failed to create cart: %v", err)
	}

	totalRequests := stock.Amount + *extra

	var successCount atomic.Int32
	var outOfStockCount atomic.Int32
	var otherCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := cartManager.AddProduct(ctx, *productID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrOutOfStock):
				outOfStockCount.Add(1)
			default:
				otherCount.Add(1)
				log.Printf("add failed: %v", err)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := int(successCount.Load())
	outOfStock := int(outOfStockCount.Load())

	fmt.Println("========== STOCK PROBE RESULTS ==========")
	fmt.Printf("Product:          %d\n", *productID)
	fmt.Printf("Reported Stock:   %d\n", stock.Amount)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Out Of Stock:     %d\n", outOfStock)
	fmt.Printf("Other Failures:   %d\n", otherCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=========================================")

	if success == stock.Amount && outOfStock == *extra {
		fmt.Printf("PASS: exactly %d adds succeeded, %d hit the stock limit\n", success, outOfStock)
	} else {
		fmt.Printf("FAIL: expected %d success/%d out of stock, got %d/%d\n",
			stock.Amount, *extra, success, outOfStock)
	}

	amount := 0
	if item, ok := cartManager.Cart().Find(*productID); ok {
		amount = item.Amount
	}
	fmt.Printf("Final Cart Amount: %d\n", amount)

	if amount == success {
		fmt.Println("PASS: cart amount matches successful adds")
	} else {
		fmt.Printf("FAIL: expected cart amount %d, got %d\n", success, amount)
	}
}
