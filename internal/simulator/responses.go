package simulator

// SampleSource is the buffer the demo panel starts with.
const SampleSource = `function calculateTotal(items) {
  let sum = 0;
  for (let i = 0; i < items.length; i++) {
    sum += items[i].price;
  }
  return sum;
}`

// MissingEndpointMessage replaces any result while no edge function URL is configured.
const MissingEndpointMessage = "Please set up your Edge Function URL first (extension.edge_function_url or --endpoint)."

const completeResponse = SampleSource + `

// Example usage:
const items = [
  { name: 'Product 1', price: 10 },
  { name: 'Product 2', price: 20 },
  { name: 'Product 3', price: 30 }
];

const total = calculateTotal(items);
console.log(` + "`Total price: ${total}`" + `);`

const explainResponse = `This function calculates the total price of a collection of items.

1. It declares a variable 'sum' initialized to 0
2. It iterates through each item in the 'items' array
3. For each item, it adds the item's price to the running sum
4. Finally, it returns the total sum

Performance considerations:
- Time complexity: O(n) where n is the number of items
- Space complexity: O(1) as it uses constant extra space`

const refactorResponse = `// Refactored using modern JavaScript features
function calculateTotal(items) {
  // Use reduce for cleaner array processing
  return items.reduce((sum, item) => sum + item.price, 0);
}

// Could also be written as an arrow function:
// const calculateTotal = (items) => items.reduce((sum, item) => sum + item.price, 0);`

const testResponse = `import { describe, it, expect } from 'vitest';

describe('calculateTotal', () => {
  it('calculates the sum of item prices', () => {
    const items = [
      { name: 'Product 1', price: 10 },
      { name: 'Product 2', price: 20 },
      { name: 'Product 3', price: 30 }
    ];
    expect(calculateTotal(items)).toBe(60);
  });

  it('returns 0 for an empty array', () => {
    expect(calculateTotal([])).toBe(0);
  });

  it('handles negative prices correctly', () => {
    const items = [
      { name: 'Product 1', price: 10 },
      { name: 'Discount', price: -5 }
    ];
    expect(calculateTotal(items)).toBe(5);
  });
});`

const documentResponse = `/**
 * Calculates the total price of all items in an array
 *
 * @param {Array<{price: number}>} items - An array of items with price properties
 * @returns {number} The sum of all item prices
 *
 * @example
 * const items = [{name: 'Product 1', price: 10}, {name: 'Product 2', price: 20}];
 * const total = calculateTotal(items);
 * // total === 30
 */`

// CannedResponse returns the fixed result text for an operation.
func CannedResponse(operation Operation) (string, bool) {
	switch operation {
	case OperationComplete:
		return completeResponse, true
	case OperationExplain:
		return explainResponse, true
	case OperationRefactor:
		return refactorResponse, true
	case OperationTest:
		return testResponse, true
	case OperationDocument:
		return documentResponse, true
	default:
		return "", false
	}
}
