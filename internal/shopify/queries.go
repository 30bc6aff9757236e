package shopify

// ProductListQuery fetches one page of products with the full node selection
const ProductListQuery = `
query GetProducts($query: String, $first: Int!, $after: String) {
  products(first: $first, after: $after, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        handle
        description
        productType
        tags
        totalInventory
        images(first: 1) {
          edges {
            node {
              src
              altText
            }
          }
        }
        variants(first: 50) {
          edges {
            node {
              id
              title
              availableForSale
              sku
              price {
                amount
                currencyCode
              }
              selectedOptions {
                name
                value
              }
            }
          }
        }
      }
    }
  }
}
`

// ProductCursorQuery advances the product cursor without fetching nodes
const ProductCursorQuery = `
query GetCursor($query: String, $first: Int!, $after: String) {
  products(first: $first, after: $after, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}
`

// CollectionProductListQuery fetches one page of a collection's products.
// descriptionHtml (not description) is what the client-side search filter
// inspects on this path.
const CollectionProductListQuery = `
query GetProductsInCollection($handle: String!, $first: Int!, $after: String) {
  collectionByHandle(handle: $handle) {
    id
    title
    products(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
          id
          title
          handle
          descriptionHtml
          productType
          tags
          totalInventory
          images(first: 1) {
            edges {
              node {
                src
                altText
              }
            }
          }
          variants(first: 20) {
            edges {
              node {
                id
                title
                availableForSale
                sku
                price {
                  amount
                  currencyCode
                }
                selectedOptions {
                  name
                  value
                }
              }
            }
          }
        }
      }
    }
  }
}
`

// CollectionCursorQuery advances a collection's product cursor without
// fetching nodes
const CollectionCursorQuery = `
query GetCursor($handle: String!, $first: Int!, $after: String) {
  collectionByHandle(handle: $handle) {
    products(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}
`

// CustomerAccessTokenCreateMutation exchanges customer credentials for a
// storefront access token
const CustomerAccessTokenCreateMutation = `
mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken {
      accessToken
      expiresAt
    }
    userErrors {
      field
      message
    }
  }
}
`
