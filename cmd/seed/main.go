// Command seed fills the employee store with synthetic records or dumps it to CSV.
package main

func main() {
	Execute()
}
